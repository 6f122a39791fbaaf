package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"hairday/internal/models/db_models"
	"hairday/internal/repositories"
)

// memStore is the in-memory test double for repositories.Store. Finds
// return copies so "no mutation on failure" assertions are real;
// Update writes a copy back.
type memStore struct {
	mu            sync.Mutex
	accounts      map[uuid.UUID]*db_models.Account
	plans         map[string]*db_models.Plan
	payments      map[string]*db_models.PaymentRecord
	creditLogs    []db_models.CreditLogEntry
	notifications []*db_models.Notification
	admins        map[string]*db_models.AdminUser

	accountUpdateErr map[uuid.UUID]error
}

func newMemStore() *memStore {
	return &memStore{
		accounts:         map[uuid.UUID]*db_models.Account{},
		plans:            map[string]*db_models.Plan{},
		payments:         map[string]*db_models.PaymentRecord{},
		admins:           map[string]*db_models.AdminUser{},
		accountUpdateErr: map[uuid.UUID]error{},
	}
}

func (s *memStore) Accounts() repositories.AccountRepository           { return &memAccounts{s} }
func (s *memStore) Plans() repositories.PlanRepository                 { return &memPlans{s} }
func (s *memStore) Payments() repositories.PaymentRepository           { return &memPayments{s} }
func (s *memStore) CreditLogs() repositories.CreditLogRepository       { return &memCreditLogs{s} }
func (s *memStore) Notifications() repositories.NotificationRepository { return &memNotifications{s} }
func (s *memStore) Admins() repositories.AdminRepository               { return &memAdmins{s} }

func (s *memStore) InTx(ctx context.Context, fn func(repositories.Store) error) error {
	return fn(s)
}

func (s *memStore) seedPlan(plan db_models.Plan) {
	plan.ID = uuid.New()
	s.plans[plan.Code] = &plan
}

func (s *memStore) seedAccount(account db_models.Account) uuid.UUID {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	s.accounts[account.ID] = &account
	return account.ID
}

func (s *memStore) logsByAction(action db_models.CreditAction) []db_models.CreditLogEntry {
	var out []db_models.CreditLogEntry
	for _, entry := range s.creditLogs {
		if entry.Action == action {
			out = append(out, entry)
		}
	}
	return out
}

type memAccounts struct{ s *memStore }

func (r *memAccounts) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memAccounts) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	return r.FindByID(ctx, id)
}

func (r *memAccounts) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAccounts) FindPaid(ctx context.Context) ([]db_models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []db_models.Account
	for _, a := range r.s.accounts {
		if a.Plan != db_models.PlanFree && a.Plan != "" {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *memAccounts) Insert(ctx context.Context, account *db_models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.CreatedAt = time.Now().Unix()
	cp := *account
	r.s.accounts[account.ID] = &cp
	return nil
}

func (r *memAccounts) Update(ctx context.Context, account *db_models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err, ok := r.s.accountUpdateErr[account.ID]; ok {
		return err
	}
	cp := *account
	r.s.accounts[account.ID] = &cp
	return nil
}

func (r *memAccounts) UpdateCard(ctx context.Context, id uuid.UUID, last4, brand string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil
	}
	a.CardLast4 = last4
	a.CardBrand = brand
	return nil
}

type memPlans struct{ s *memStore }

func (r *memPlans) FindByCode(ctx context.Context, code string) (*db_models.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.plans[code]
	if !ok || !p.IsActive {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPlans) FindActive(ctx context.Context) ([]db_models.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []db_models.Plan
	for _, p := range r.s.plans {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPlans) Insert(ctx context.Context, plan *db_models.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *plan
	r.s.plans[plan.Code] = &cp
	return nil
}

type memPayments struct{ s *memStore }

func (r *memPayments) FindByPaymentID(ctx context.Context, paymentID string) (*db_models.PaymentRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[paymentID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPayments) FindByPaymentIDForUpdate(ctx context.Context, paymentID string) (*db_models.PaymentRecord, error) {
	return r.FindByPaymentID(ctx, paymentID)
}

func (r *memPayments) Insert(ctx context.Context, record *db_models.PaymentRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now().Unix()
	cp := *record
	r.s.payments[record.PaymentID] = &cp
	return nil
}

func (r *memPayments) Update(ctx context.Context, record *db_models.PaymentRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *record
	r.s.payments[record.PaymentID] = &cp
	return nil
}

type memCreditLogs struct{ s *memStore }

func (r *memCreditLogs) Append(ctx context.Context, entry *db_models.CreditLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now().Unix()
	r.s.creditLogs = append(r.s.creditLogs, *entry)
	return nil
}

func (r *memCreditLogs) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.CreditLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []db_models.CreditLogEntry
	for _, entry := range r.s.creditLogs {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type memNotifications struct{ s *memStore }

func (r *memNotifications) Insert(ctx context.Context, notification *db_models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	notification.CreatedAt = time.Now().Unix()
	cp := *notification
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r *memNotifications) ExistsSince(ctx context.Context, userID uuid.UUID, typ db_models.NotificationType, since time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.UserID == userID && n.Type == typ && n.CreatedAt >= since.Unix() {
			return true, nil
		}
	}
	return false, nil
}

func (r *memNotifications) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []db_models.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *memNotifications) MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return nil
}

type memAdmins struct{ s *memStore }

func (r *memAdmins) FindByEmail(ctx context.Context, email string) (*db_models.AdminUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[email]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memAdmins) FindBySessionToken(ctx context.Context, token string) (*db_models.AdminUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if a.SessionToken != nil && *a.SessionToken == token {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAdmins) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.admins)), nil
}

func (r *memAdmins) List(ctx context.Context) ([]db_models.AdminUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []db_models.AdminUser
	for _, a := range r.s.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (r *memAdmins) Insert(ctx context.Context, admin *db_models.AdminUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	admin.CreatedAt = time.Now().Unix()
	cp := *admin
	r.s.admins[admin.Email] = &cp
	return nil
}

func (r *memAdmins) Update(ctx context.Context, admin *db_models.AdminUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *admin
	r.s.admins[admin.Email] = &cp
	return nil
}

func (r *memAdmins) DeleteByEmail(ctx context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.admins, email)
	return nil
}

// fakeGateway is the PaymentGateway test double.
type fakeGateway struct {
	verifyErr   error
	cancelErr   error
	amount      int64
	cardLast4   string
	cardBrand   string
	cancelCalls []string
}

func (g *fakeGateway) Verify(ctx context.Context, paymentID string, expectedAmount int64) (*GatewayPayment, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	amount := g.amount
	if amount == 0 {
		amount = expectedAmount
	}
	return &GatewayPayment{
		PaymentID: paymentID,
		Amount:    amount,
		CardLast4: g.cardLast4,
		CardBrand: g.cardBrand,
	}, nil
}

func (g *fakeGateway) Cancel(ctx context.Context, paymentID string, reason string) error {
	if g.cancelErr != nil {
		return g.cancelErr
	}
	g.cancelCalls = append(g.cancelCalls, paymentID)
	return nil
}

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendMailToNotifyUser(to, subject, body, ctaText, ctaURL string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+": "+subject)
	return nil
}
