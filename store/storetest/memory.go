// Package storetest provides an in-memory store.Store for service and
// handler tests. Transactions serialize on a mutex — the stand-in for
// the database row lock — and roll back by snapshot, so the capacity
// and token-consumption semantics match the real store closely enough
// to exercise the booking engine's concurrency properties.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/store"
)

type data struct {
	counselors  map[uuid.UUID]models.Counselor
	schedules   map[uuid.UUID]models.Schedule
	bookings    map[uuid.UUID]models.Booking
	invitations map[string]models.InvitationLink        // keyed by token
	records     map[uuid.UUID]models.ConsultationRecord // keyed by booking ID
}

func newData() *data {
	return &data{
		counselors:  make(map[uuid.UUID]models.Counselor),
		schedules:   make(map[uuid.UUID]models.Schedule),
		bookings:    make(map[uuid.UUID]models.Booking),
		invitations: make(map[string]models.InvitationLink),
		records:     make(map[uuid.UUID]models.ConsultationRecord),
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.counselors {
		c.counselors[k] = v
	}
	for k, v := range d.schedules {
		c.schedules[k] = v
	}
	for k, v := range d.bookings {
		c.bookings[k] = v
	}
	for k, v := range d.invitations {
		c.invitations[k] = v
	}
	for k, v := range d.records {
		c.records[k] = v
	}
	return c
}

// Memory is an in-memory store.Store.
type Memory struct {
	mu   sync.Mutex // guards d
	txMu sync.Mutex // serializes transactions, like the schedule row lock
	d    *data
}

func New() *Memory {
	return &Memory{d: newData()}
}

func (m *Memory) Counselors() store.CounselorRepo   { return memCounselors{m} }
func (m *Memory) Schedules() store.ScheduleRepo     { return memSchedules{m} }
func (m *Memory) Bookings() store.BookingRepo       { return memBookings{m} }
func (m *Memory) Invitations() store.InvitationRepo { return memInvitations{m} }
func (m *Memory) Records() store.RecordRepo         { return memRecords{m} }

func (m *Memory) InTransaction(ctx context.Context, fn func(store.Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := m.d.clone()
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.d = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

type memCounselors struct{ m *Memory }

func (r memCounselors) Create(ctx context.Context, c *models.Counselor) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ensureID(&c.ID)
	c.CreatedAt = time.Now()
	r.m.d.counselors[c.ID] = *c
	return nil
}

func (r memCounselors) FindByID(ctx context.Context, id uuid.UUID) (*models.Counselor, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.d.counselors[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (r memCounselors) FindByEmail(ctx context.Context, email string) (*models.Counselor, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.d.counselors {
		if c.Email == email {
			c := c
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r memCounselors) Save(ctx context.Context, c *models.Counselor) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.d.counselors[c.ID] = *c
	return nil
}

func (r memCounselors) Count(ctx context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.d.counselors)), nil
}

type memSchedules struct{ m *Memory }

func (r memSchedules) Create(ctx context.Context, s *models.Schedule) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ensureID(&s.ID)
	if s.MaxCapacity == 0 {
		s.MaxCapacity = models.DefaultMaxCapacity
	}
	s.CreatedAt = time.Now()
	r.m.d.schedules[s.ID] = *s
	return nil
}

func (r memSchedules) FindByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.d.schedules[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (r memSchedules) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	// Exclusion is provided by the transaction mutex.
	return r.FindByID(ctx, id)
}

func (r memSchedules) Exists(ctx context.Context, counselorID uuid.UUID, date, startTime string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.d.schedules {
		if s.CounselorID == counselorID && s.Date == date && s.StartTime == startTime {
			return true, nil
		}
	}
	return false, nil
}

func sortSchedules(out []models.Schedule) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
}

func (r memSchedules) ListByCounselor(ctx context.Context, counselorID uuid.UUID, startDate, endDate string) ([]models.Schedule, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Schedule
	for _, s := range r.m.d.schedules {
		if s.CounselorID != counselorID {
			continue
		}
		if startDate != "" && endDate != "" {
			if strings.Compare(s.Date, startDate) < 0 || strings.Compare(s.Date, endDate) > 0 {
				continue
			}
		}
		out = append(out, s)
	}
	sortSchedules(out)
	return out, nil
}

func (r memSchedules) ListByCounselorAndDate(ctx context.Context, counselorID uuid.UUID, date string) ([]models.Schedule, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Schedule
	for _, s := range r.m.d.schedules {
		if s.CounselorID != counselorID {
			continue
		}
		if date != "" && s.Date != date {
			continue
		}
		out = append(out, s)
	}
	sortSchedules(out)
	return out, nil
}

func (r memSchedules) Save(ctx context.Context, s *models.Schedule) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.d.schedules[s.ID] = *s
	return nil
}

func (r memSchedules) Delete(ctx context.Context, s *models.Schedule) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, b := range r.m.d.bookings {
		if b.ScheduleID == s.ID {
			delete(r.m.d.bookings, id)
		}
	}
	delete(r.m.d.schedules, s.ID)
	return nil
}

type memBookings struct{ m *Memory }

func (r memBookings) Create(ctx context.Context, b *models.Booking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ensureID(&b.ID)
	if b.Status == "" {
		b.Status = models.StatusConfirmed
	}
	b.CreatedAt = time.Now()
	r.m.d.bookings[b.ID] = *b
	return nil
}

func (r memBookings) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.d.bookings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if s, ok := r.m.d.schedules[b.ScheduleID]; ok {
		b.Schedule = s
	}
	if rec, ok := r.m.d.records[b.ID]; ok {
		b.ConsultationRecord = &rec
	}
	return &b, nil
}

func (r memBookings) CountActive(ctx context.Context, scheduleID uuid.UUID) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for _, b := range r.m.d.bookings {
		if b.ScheduleID == scheduleID && b.Status != models.StatusCancelled {
			n++
		}
	}
	return n, nil
}

func (r memBookings) ListForCounselor(ctx context.Context, counselorID uuid.UUID, scheduleID *uuid.UUID, status models.BookingStatus) ([]models.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Booking
	for _, b := range r.m.d.bookings {
		s, ok := r.m.d.schedules[b.ScheduleID]
		if !ok || s.CounselorID != counselorID {
			continue
		}
		if scheduleID != nil && b.ScheduleID != *scheduleID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		b.Schedule = s
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Schedule.Date != out[j].Schedule.Date {
			return out[i].Schedule.Date < out[j].Schedule.Date
		}
		return out[i].Schedule.StartTime < out[j].Schedule.StartTime
	})
	return out, nil
}

func (r memBookings) Save(ctx context.Context, b *models.Booking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.d.bookings[b.ID] = *b
	return nil
}

type memInvitations struct{ m *Memory }

func (r memInvitations) Create(ctx context.Context, inv *models.InvitationLink) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ensureID(&inv.ID)
	inv.CreatedAt = time.Now()
	r.m.d.invitations[inv.Token] = *inv
	return nil
}

func (r memInvitations) FindByToken(ctx context.Context, token string) (*models.InvitationLink, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	inv, ok := r.m.d.invitations[token]
	if !ok {
		return nil, store.ErrNotFound
	}
	if c, ok := r.m.d.counselors[inv.CounselorID]; ok {
		inv.Counselor = c
	}
	return &inv, nil
}

func (r memInvitations) Consume(ctx context.Context, token string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	inv, ok := r.m.d.invitations[token]
	if !ok || inv.IsUsed {
		return false, nil
	}
	inv.IsUsed = true
	r.m.d.invitations[token] = inv
	return true, nil
}

func (r memInvitations) ListByCounselor(ctx context.Context, counselorID uuid.UUID) ([]models.InvitationLink, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.InvitationLink
	for _, inv := range r.m.d.invitations {
		if inv.CounselorID == counselorID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memRecords struct{ m *Memory }

func (r memRecords) Create(ctx context.Context, rec *models.ConsultationRecord) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ensureID(&rec.ID)
	rec.CreatedAt = time.Now()
	r.m.d.records[rec.BookingID] = *rec
	return nil
}

func (r memRecords) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*models.ConsultationRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rec, ok := r.m.d.records[bookingID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &rec, nil
}

func (r memRecords) Save(ctx context.Context, rec *models.ConsultationRecord) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rec.UpdatedAt = time.Now()
	r.m.d.records[rec.BookingID] = *rec
	return nil
}
