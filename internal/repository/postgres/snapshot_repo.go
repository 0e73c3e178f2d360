package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const getDailySnapshotSQL = `
SELECT daily_revenue, invoices_today, paid_invoices, pending_invoices, pending_amount,
       voided_invoices, voided_amount, revenue_growth,
       cash_amount, debit_amount, credit_amount, transfer_amount,
       opening_balance, expenses, current_balance, exchange_rate
FROM daily_snapshots
WHERE business_date = $1`

const listInvoicesSQL = `
SELECT number, client_name, issued_at, amount, payment_method, status
FROM invoices
WHERE issued_at >= $1 AND issued_at < $2
ORDER BY issued_at, id`

const listSalesSQL = `
SELECT issued_at, amount
FROM invoices
WHERE issued_at >= $1 AND issued_at < $2 AND status <> 'voided'`

// invoiceTimeLayout is how an invoice's time of day is shown in the list
const invoiceTimeLayout = "03:04 PM"

// SnapshotRepository implements domain.SnapshotSource using PostgreSQL
type SnapshotRepository struct {
	pool     *pgxpool.Pool
	location *time.Location
	now      func() time.Time
}

// NewSnapshotRepository creates a new SnapshotRepository reading the business day in loc
func NewSnapshotRepository(pool *pgxpool.Pool, loc *time.Location) *SnapshotRepository {
	if loc == nil {
		loc = time.Local
	}
	return &SnapshotRepository{
		pool:     pool,
		location: loc,
		now:      time.Now,
	}
}

var _ domain.SnapshotSource = (*SnapshotRepository)(nil)

// LoadSnapshot retrieves today's register snapshot
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context) (*domain.MetricsSnapshot, error) {
	start, _ := r.businessDay()

	var (
		revenue, pendingAmount, voidedAmount, growth pgtype.Numeric
		cash, debit, credit, transfer                pgtype.Numeric
		opening, expenses, current, rate             pgtype.Numeric
		invoicesToday, paid, pending, voided         int32
	)

	err := r.pool.QueryRow(ctx, getDailySnapshotSQL, start).Scan(
		&revenue, &invoicesToday, &paid, &pending, &pendingAmount,
		&voided, &voidedAmount, &growth,
		&cash, &debit, &credit, &transfer,
		&opening, &expenses, &current, &rate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no snapshot for %s: %w", start.Format(time.DateOnly), domain.ErrSnapshotUnavailable)
		}
		return nil, err
	}

	return &domain.MetricsSnapshot{
		DailyRevenue:    pgNumericToDecimal(revenue),
		InvoicesToday:   int(invoicesToday),
		PaidInvoices:    int(paid),
		PendingInvoices: int(pending),
		PendingAmount:   pgNumericToDecimal(pendingAmount),
		VoidedInvoices:  int(voided),
		VoidedAmount:    pgNumericToDecimal(voidedAmount),
		RevenueGrowth:   pgNumericToDecimal(growth),
		CashAmount:      pgNumericToDecimal(cash),
		DebitAmount:     pgNumericToDecimal(debit),
		CreditAmount:    pgNumericToDecimal(credit),
		TransferAmount:  pgNumericToDecimal(transfer),
		OpeningBalance:  pgNumericToDecimal(opening),
		Expenses:        pgNumericToDecimal(expenses),
		CurrentBalance:  pgNumericToDecimal(current),
		ExchangeRate:    pgNumericToDecimal(rate),
	}, nil
}

// LoadInvoices retrieves today's invoices ordered by issue time
func (r *SnapshotRepository) LoadInvoices(ctx context.Context) ([]domain.InvoiceRecord, error) {
	start, end := r.businessDay()

	rows, err := r.pool.Query(ctx, listInvoicesSQL, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]domain.InvoiceRecord, 0)
	for rows.Next() {
		var (
			number, client, method, status string
			issuedAt                       time.Time
			amount                         pgtype.Numeric
		)
		if err := rows.Scan(&number, &client, &issuedAt, &amount, &method, &status); err != nil {
			return nil, err
		}
		invoices = append(invoices, domain.InvoiceRecord{
			Number:        number,
			Client:        client,
			Time:          issuedAt.In(r.location).Format(invoiceTimeLayout),
			Amount:        pgNumericToDecimal(amount),
			PaymentMethod: domain.ParsePaymentMethod(method),
			Status:        domain.ParseInvoiceStatus(status),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}

// LoadHourlySales sums today's non-voided invoice amounts per chart hour bucket.
// Hours are taken in the repository's location. Hours without sales are reported as zero.
func (r *SnapshotRepository) LoadHourlySales(ctx context.Context) ([]domain.HourlySales, error) {
	start, end := r.businessDay()

	rows, err := r.pool.Query(ctx, listSalesSQL, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int]decimal.Decimal)
	for rows.Next() {
		var (
			issuedAt time.Time
			amount   pgtype.Numeric
		)
		if err := rows.Scan(&issuedAt, &amount); err != nil {
			return nil, err
		}
		r.addSale(totals, issuedAt, pgNumericToDecimal(amount))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fillHourBuckets(totals), nil
}

// addSale adds amount to the bucket of the local hour the sale was issued in
func (r *SnapshotRepository) addSale(totals map[int]decimal.Decimal, issuedAt time.Time, amount decimal.Decimal) {
	hour := issuedAt.In(r.location).Hour()
	totals[hour] = totals[hour].Add(amount)
}

func fillHourBuckets(totals map[int]decimal.Decimal) []domain.HourlySales {
	sales := make([]domain.HourlySales, 0, domain.SalesLastHour-domain.SalesFirstHour+1)
	for hour := domain.SalesFirstHour; hour <= domain.SalesLastHour; hour++ {
		total, ok := totals[hour]
		if !ok {
			total = decimal.Zero
		}
		sales = append(sales, domain.HourlySales{Label: domain.HourLabel(hour), Total: total})
	}
	return sales
}

// businessDay returns the [start, end) bounds of today in the repository's location
func (r *SnapshotRepository) businessDay() (time.Time, time.Time) {
	now := r.now().In(r.location)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.location)
	return start, start.AddDate(0, 0, 1)
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
