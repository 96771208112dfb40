package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuroscreen/internal/models"
)

func result(id string, domain models.Domain, score int) models.AssessmentResult {
	return models.AssessmentResult{ID: id, Domain: domain, Score: score}
}

func TestByDomainPreservesInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Add(result("a", models.DomainCognitive, 90)))
	require.NoError(t, s.Add(result("b", models.DomainMotor, 75)))
	require.NoError(t, s.Add(result("c", models.DomainCognitive, 60)))

	cognitive, err := s.ByDomain(models.DomainCognitive)
	require.NoError(t, err)
	require.Len(t, cognitive, 2)
	assert.Equal(t, "a", cognitive[0].ID)
	assert.Equal(t, "c", cognitive[1].ID)

	speech, err := s.ByDomain(models.DomainSpeech)
	require.NoError(t, err)
	assert.Empty(t, speech)
}

func TestLatestReturnsMostRecent(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Add(result("a", models.DomainBehavioral, 90)))
	require.NoError(t, s.Add(result("b", models.DomainBehavioral, 55)))

	latest, err := s.Latest(models.DomainBehavioral)
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID)
}

func TestLatestEmptyDomain(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Latest(models.DomainMotor)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentAdds(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.Add(result(fmt.Sprintf("r%d", n), models.DomainCognitive, n))
		}(i)
	}
	wg.Wait()

	all, err := s.ByDomain(models.DomainCognitive)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}
