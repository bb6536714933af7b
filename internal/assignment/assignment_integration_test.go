//go:build integration

package assignment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amparo/internal/assignment"
	"amparo/internal/assignment/models"
	assignmentservice "amparo/internal/assignment/service"
	assignmentstore "amparo/internal/assignment/store"
	beneficiarymodels "amparo/internal/beneficiary/models"
	beneficiarystore "amparo/internal/beneficiary/store"
	benefitmodels "amparo/internal/benefit/models"
	benefitstore "amparo/internal/benefit/store"
	id "amparo/pkg/domain"
	auditpublisher "amparo/pkg/platform/audit/publisher"
	auditpostgres "amparo/pkg/platform/audit/store/postgres"
	"amparo/pkg/platform/tx"
	"amparo/pkg/requestcontext"
	"amparo/pkg/testutil/containers"
)

// Concurrent grants of the same benefit race on the partial unique index;
// exactly one survives and the rest report a duplicate.
func TestConcurrentCreateKeepsOneActivePerPair(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.Local)
	ctx := requestcontext.WithTime(context.Background(), now)
	today := requestcontext.Today(ctx)

	beneficiaries := beneficiarystore.NewPostgres(pg.DB)
	benefits := benefitstore.NewPostgres(pg.DB)
	store := assignmentstore.NewPostgres(pg.DB)

	b, err := beneficiarymodels.NewBeneficiary(id.BeneficiaryID(uuid.New()), "A-20240510-0001",
		beneficiarymodels.Fields{Name: "Maria", Status: beneficiarymodels.StatusActive}, today, now)
	require.NoError(t, err)
	require.NoError(t, beneficiaries.Create(ctx, b))

	bf, err := benefitmodels.NewBenefit(id.BenefitID(uuid.New()), benefitmodels.Fields{
		Name: "Cesta basica", Category: benefitmodels.CategoryFood,
		Periodicity: benefitmodels.PeriodicityMonthly, Active: true,
	}, now)
	require.NoError(t, err)
	require.NoError(t, benefits.Create(ctx, bf))

	svc := assignment.NewService(store, beneficiaries, benefits,
		assignmentservice.WithTx(tx.NewSQLRunner(pg.DB)),
		assignmentservice.WithAuditPublisher(auditpublisher.NewPublisher(auditpostgres.New(pg.DB))),
	)

	const workers = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		duplicate int
		other     []error
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Create(ctx, models.Draft{BeneficiaryID: b.ID, BenefitID: bf.ID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, models.ErrDuplicateActive):
				duplicate++
			default:
				other = append(other, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.Empty(t, other)
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, duplicate)

	n, err := store.CountByBenefit(ctx, bf.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var outbox int
	require.NoError(t, pg.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM audit_outbox WHERE action = 'assignment_created'`).Scan(&outbox))
	assert.Equal(t, 1, outbox, "rolled back grants leave no audit rows")
}
