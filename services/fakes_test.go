package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"backend/models"
)

// In-memory fakes for the repository and gateway interfaces. Producer
// passes are fed directly with these; no timers or database involved.

type fakeAlertRepo struct {
	mu        sync.Mutex
	nextID    uint
	alerts    map[uint]models.Alert
	lastLimit int
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: make(map[uint]models.Alert)}
}

func (f *fakeAlertRepo) Create(ctx context.Context, a *models.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	f.alerts[a.ID] = *a
	return nil
}

func (f *fakeAlertRepo) FindByID(ctx context.Context, id uint) (*models.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.alerts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeAlertRepo) FindOwned(ctx context.Context, id, userID uint) (*models.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.alerts[id]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeAlertRepo) Save(ctx context.Context, a *models.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts[a.ID] = *a
	return nil
}

func (f *fakeAlertRepo) ListByUser(ctx context.Context, userID uint, status *models.AlertStatus, limit int) ([]models.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	var out []models.Alert
	for id := f.nextID; id >= 1; id-- { // newest first
		a, ok := f.alerts[id]
		if !ok || a.UserID != userID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAlertRepo) Delete(ctx context.Context, id, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.alerts[id]
	if !ok || a.UserID != userID {
		return false, nil
	}
	delete(f.alerts, id)
	return true, nil
}

type fakeUserRepo struct {
	users map[uint]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uint]models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) ByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserRepo) Active(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for id := uint(1); id <= uint(len(f.users))+10; id++ {
		if u, ok := f.users[id]; ok && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeScheduleRepo struct {
	mu        sync.Mutex
	schedules []models.MedicationSchedule
	taken     map[string]bool
	markers   map[string]bool
	adherence map[string]models.AdherenceStatus

	activeErr error
	takenErr  map[uint]error
}

func newFakeScheduleRepo(schedules ...models.MedicationSchedule) *fakeScheduleRepo {
	return &fakeScheduleRepo{
		schedules: schedules,
		taken:     make(map[string]bool),
		markers:   make(map[string]bool),
		adherence: make(map[string]models.AdherenceStatus),
		takenErr:  make(map[uint]error),
	}
}

func dayKey(scheduleID uint, day time.Time) string {
	return fmt.Sprintf("%d|%s", scheduleID, day.Format("2006-01-02"))
}

func (f *fakeScheduleRepo) Create(ctx context.Context, s *models.MedicationSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = uint(len(f.schedules) + 1)
	f.schedules = append(f.schedules, *s)
	return nil
}

func (f *fakeScheduleRepo) FindOwned(ctx context.Context, id, userID uint) (*models.MedicationSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.schedules {
		if s.ID == id && s.UserID == userID {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) Save(ctx context.Context, s *models.MedicationSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.schedules {
		if f.schedules[i].ID == s.ID {
			f.schedules[i] = *s
		}
	}
	return nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.schedules {
		if s.ID == id && s.UserID == userID {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleRepo) ListByUser(ctx context.Context, userID uint) ([]models.MedicationSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.MedicationSchedule
	for _, s := range f.schedules {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ActiveAt(ctx context.Context, t time.Time) ([]models.MedicationSchedule, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MedicationSchedule(nil), f.schedules...), nil
}

func (f *fakeScheduleRepo) TakenOn(ctx context.Context, scheduleID uint, day time.Time) (bool, error) {
	if err := f.takenErr[scheduleID]; err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.taken[dayKey(scheduleID, day)], nil
}

func (f *fakeScheduleRepo) UpsertAdherence(ctx context.Context, scheduleID uint, day time.Time, status models.AdherenceStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adherence[dayKey(scheduleID, day)] = status
	if status == models.AdherenceTaken {
		f.taken[dayKey(scheduleID, day)] = true
	} else {
		delete(f.taken, dayKey(scheduleID, day))
	}
	return nil
}

func (f *fakeScheduleRepo) MarkReminded(ctx context.Context, scheduleID uint, day time.Time, slot string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := dayKey(scheduleID, day) + "|" + slot
	if f.markers[key] {
		return false, nil
	}
	f.markers[key] = true
	return true, nil
}

type fakeMonitoringRepo struct {
	entries map[string]models.DailyMonitoringEntry
}

func newFakeMonitoringRepo() *fakeMonitoringRepo {
	return &fakeMonitoringRepo{entries: make(map[string]models.DailyMonitoringEntry)}
}

func (f *fakeMonitoringRepo) Upsert(ctx context.Context, e *models.DailyMonitoringEntry) error {
	e.ID = uint(len(f.entries) + 1)
	f.entries[dayKey(e.UserID, e.Date)] = *e
	return nil
}

func (f *fakeMonitoringRepo) ForDay(ctx context.Context, userID uint, dayStart time.Time) (*models.DailyMonitoringEntry, error) {
	e, ok := f.entries[dayKey(userID, dayStart)]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeMonitoringRepo) ExistsForDay(ctx context.Context, userID uint, dayStart time.Time) (bool, error) {
	_, ok := f.entries[dayKey(userID, dayStart)]
	return ok, nil
}

type fakeSymptomRepo struct {
	nextID    uint
	reports   map[uint]models.SymptomReport
	escalated map[uint]bool
}

func newFakeSymptomRepo() *fakeSymptomRepo {
	return &fakeSymptomRepo{reports: make(map[uint]models.SymptomReport), escalated: make(map[uint]bool)}
}

func (f *fakeSymptomRepo) Create(ctx context.Context, r *models.SymptomReport) error {
	f.nextID++
	r.ID = f.nextID
	f.reports[r.ID] = *r
	return nil
}

func (f *fakeSymptomRepo) MarkEscalated(ctx context.Context, id uint) error {
	f.escalated[id] = true
	return nil
}

func (f *fakeSymptomRepo) ListByUser(ctx context.Context, userID uint, limit int) ([]models.SymptomReport, error) {
	var out []models.SymptomReport
	for id := f.nextID; id >= 1 && len(out) < limit; id-- {
		if r, ok := f.reports[id]; ok && r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeIntake records AlertRequests in arrival order.
type fakeIntake struct {
	mu     sync.Mutex
	reqs   []AlertRequest
	errFor map[uint]error // fail requests for specific users
}

func newFakeIntake() *fakeIntake {
	return &fakeIntake{errFor: make(map[uint]error)}
}

func (f *fakeIntake) Handle(ctx context.Context, req AlertRequest) (*models.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errFor[req.UserID]; err != nil {
		return nil, err
	}
	f.reqs = append(f.reqs, req)
	return &models.Alert{ID: uint(len(f.reqs)), UserID: req.UserID}, nil
}

func (f *fakeIntake) requests() []AlertRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]AlertRequest(nil), f.reqs...)
}

type fakeEmailGateway struct {
	mu      sync.Mutex
	err     error
	to      string
	subject string
	body    string
	sends   int
}

func (f *fakeEmailGateway) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends++
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

type fakeSmsGateway struct {
	mu    sync.Mutex
	err   error
	to    string
	body  string
	sends int
}

func (f *fakeSmsGateway) Send(ctx context.Context, toE164, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends++
	f.to, f.body = toE164, body
	return f.err
}

type fakeAppChannel struct {
	mu      sync.Mutex
	err     error
	records int
}

func (f *fakeAppChannel) Record(ctx context.Context, userID uint, alert *models.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records++
	return f.err
}

type fakeFinalizer struct {
	called    bool
	alertID   uint
	delivered bool
}

func (f *fakeFinalizer) Finalize(ctx context.Context, alertID uint, delivered bool) (*models.Alert, error) {
	f.called = true
	f.alertID = alertID
	f.delivered = delivered
	return &models.Alert{ID: alertID, Status: models.AlertStatusSent}, nil
}

type dispatchCall struct {
	alert *models.Alert
	user  *models.User
}

type fakeDispatcher struct {
	calls []dispatchCall
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, alert *models.Alert, user *models.User) []ChannelResult {
	f.calls = append(f.calls, dispatchCall{alert: alert, user: user})
	return nil
}

type fakeAssessor struct {
	assessment *Assessment
	err        error
	gotText    string
	gotLabels  []string
}

func (f *fakeAssessor) Assess(ctx context.Context, description string, imageLabels []string) (*Assessment, error) {
	f.gotText = description
	f.gotLabels = imageLabels
	if f.err != nil {
		return nil, f.err
	}
	return f.assessment, nil
}
