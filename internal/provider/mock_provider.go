package provider

import (
	"context"
	"fmt"
	"time"

	"jobfinder/internal/domain"
	"jobfinder/internal/logger"
	iface "jobfinder/internal/provider/iface"
	"jobfinder/internal/secrets"
)

type mockAdapter struct {
	secretID string
	store    *secrets.Store
	logger   logger.Logger
	now      func() time.Time
}

// NewMockAdapter creates a mock job board adapter that serves a small
// generated catalog. It resolves its credentials like a real adapter would
// but tolerates a missing secret so local runs need no setup.
func NewMockAdapter(store *secrets.Store, secretID string, log logger.Logger) iface.Adapter {
	return &mockAdapter{
		secretID: secretID,
		store:    store,
		logger:   log.With(logger.String("component", "mock_provider")),
		now:      time.Now,
	}
}

func (m *mockAdapter) ID() string { return "mock" }

func (m *mockAdapter) FetchJobs(ctx context.Context, syncType domain.SyncType) ([]domain.ProviderJob, error) {
	if m.store != nil && m.secretID != "" {
		if _, err := m.store.GetSecret(ctx, m.secretID); err != nil {
			m.logger.Warn("MOCK: proceeding without credentials",
				logger.String("secret_id", m.secretID),
				logger.Error(err))
		}
	}

	catalog := m.catalog()
	if syncType == domain.SyncTypeIncremental {
		// An incremental pull only reports the freshest postings.
		catalog = catalog[:2]
	}

	m.logger.Info("MOCK: fetched provider jobs",
		logger.String("sync_type", string(syncType)),
		logger.Int("count", len(catalog)))

	return catalog, nil
}

func (m *mockAdapter) catalog() []domain.ProviderJob {
	posted := func(daysAgo int) string {
		return m.now().AddDate(0, 0, -daysAgo).UTC().Format(time.RFC3339)
	}
	applyURL := func(id string) string {
		return fmt.Sprintf("https://boards.example.com/mock/%s/apply", id)
	}

	return []domain.ProviderJob{
		{
			ID:          "eng-backend-1",
			Title:       "Senior Backend Engineer",
			Description: "Design and run distributed ingestion services.",
			Company:     "Northwind Labs",
			Location:    "Berlin",
			Remote:      false,
			MinSalary:   float64(85000),
			MaxSalary:   float64(110000),
			PostedDate:  posted(1),
			ApplyURL:    applyURL("eng-backend-1"),
			Tags:        []string{"go", "aws"},
		},
		{
			ID:          "eng-platform-2",
			Title:       "Platform Engineer",
			Description: "Own the deployment pipeline and developer tooling.",
			Company:     "Northwind Labs",
			Location:    "Berlin",
			Remote:      true,
			MinSalary:   "70,000",
			MaxSalary:   "95,000",
			PostedDate:  posted(3),
			ApplyURL:    applyURL("eng-platform-2"),
			Tags:        []string{"kubernetes", "terraform"},
		},
		{
			ID:          "data-analyst-3",
			Title:       "Data Analyst",
			Description: "Build reporting over the hiring funnel.",
			Company:     "Contoso Analytics",
			Location:    "Munich",
			Remote:      true,
			MinSalary:   45000,
			MaxSalary:   60000,
			PostedDate:  posted(10),
			ApplyURL:    applyURL("data-analyst-3"),
			Tags:        []string{"sql", "python"},
		},
		{
			ID:          "eng-frontend-4",
			Title:       "Frontend Engineer",
			Description: "Ship the candidate-facing search experience.",
			Company:     "Contoso Analytics",
			Location:    "Remote",
			Remote:      true,
			PostedDate:  posted(21),
			ApplyURL:    applyURL("eng-frontend-4"),
			Tags:        []string{"typescript", "react"},
		},
	}
}
