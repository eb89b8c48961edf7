package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"rutilahu/internal/store"
	"rutilahu/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type recorderSpy struct {
	events []types.AuditEvent
}

func (r *recorderSpy) Record(_ context.Context, event types.AuditEvent) {
	r.events = append(r.events, event)
}

func (r *recorderSpy) last() types.AuditEvent {
	return r.events[len(r.events)-1]
}

type fakeDistrictStore struct {
	districts map[string]*types.District
}

func newFakeDistrictStore(districts ...*types.District) *fakeDistrictStore {
	s := &fakeDistrictStore{districts: make(map[string]*types.District)}
	for _, d := range districts {
		s.districts[d.ID] = d
	}
	return s
}

func (s *fakeDistrictStore) District(_ context.Context, districtID string) (*types.District, error) {
	d, ok := s.districts[districtID]
	if !ok {
		return nil, types.ErrDistrictNotFound
	}
	return d, nil
}

func (s *fakeDistrictStore) Districts(_ context.Context) ([]*types.District, error) {
	out := make([]*types.District, 0, len(s.districts))
	for _, d := range s.districts {
		out = append(out, d)
	}
	return out, nil
}

func (s *fakeDistrictStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.districts)), nil
}

func (s *fakeDistrictStore) Create(_ context.Context, district *types.District) error {
	if district.ID == "" {
		district.ID = fmt.Sprintf("district_%d", len(s.districts)+1)
	}
	s.districts[district.ID] = district
	return nil
}

type fakeVillageStore struct {
	villages map[string]*types.Village
}

func newFakeVillageStore(villages ...*types.Village) *fakeVillageStore {
	s := &fakeVillageStore{villages: make(map[string]*types.Village)}
	for _, v := range villages {
		s.villages[v.ID] = v
	}
	return s
}

func (s *fakeVillageStore) Village(_ context.Context, villageID string) (*types.Village, error) {
	v, ok := s.villages[villageID]
	if !ok {
		return nil, types.ErrVillageNotFound
	}
	return v, nil
}

func (s *fakeVillageStore) VillagesByDistrict(_ context.Context, districtID string) ([]*types.Village, error) {
	out := make([]*types.Village, 0)
	for _, v := range s.villages {
		if v.DistrictID == districtID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *fakeVillageStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.villages)), nil
}

func (s *fakeVillageStore) Create(_ context.Context, village *types.Village) error {
	if village.ID == "" {
		village.ID = fmt.Sprintf("village_%d", len(s.villages)+1)
	}
	s.villages[village.ID] = village
	return nil
}

type fakeHousingStore struct {
	records map[string]*types.HousingRecord
	seq     int
}

func newFakeHousingStore(records ...*types.HousingRecord) *fakeHousingStore {
	s := &fakeHousingStore{records: make(map[string]*types.HousingRecord)}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *fakeHousingStore) HousingRecord(_ context.Context, recordID string) (*types.HousingRecord, error) {
	r, ok := s.records[recordID]
	if !ok {
		return nil, types.ErrHousingRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *fakeHousingStore) HousingRecords(_ context.Context) ([]*types.HousingRecord, error) {
	out := make([]*types.HousingRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out, nil
}

func (s *fakeHousingStore) HousingRecordsByDistrict(_ context.Context, districtID string) ([]*types.HousingRecord, error) {
	out := make([]*types.HousingRecord, 0)
	for _, r := range s.records {
		if r.DistrictID == districtID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeHousingStore) HousingRecordsByVillage(_ context.Context, villageID string) ([]*types.HousingRecord, error) {
	out := make([]*types.HousingRecord, 0)
	for _, r := range s.records {
		if r.VillageID == villageID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeHousingStore) NIKExists(_ context.Context, nik string) (bool, error) {
	for _, r := range s.records {
		if r.NIK == nik {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeHousingStore) Create(_ context.Context, record *types.HousingRecord) error {
	s.seq++
	record.ID = fmt.Sprintf("record_%d", s.seq)
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	copied := *record
	s.records[record.ID] = &copied
	return nil
}

func (s *fakeHousingStore) Save(_ context.Context, record *types.HousingRecord) error {
	if _, ok := s.records[record.ID]; !ok {
		return types.ErrHousingRecordNotFound
	}
	record.UpdatedAt = time.Now()
	copied := *record
	s.records[record.ID] = &copied
	return nil
}

func (s *fakeHousingStore) UpdateCoordinates(_ context.Context, recordID string, lat, lon decimal.Decimal) error {
	r, ok := s.records[recordID]
	if !ok {
		return types.ErrHousingRecordNotFound
	}
	r.Latitude = &lat
	r.Longitude = &lon
	r.UpdatedAt = time.Now()
	return nil
}

func (s *fakeHousingStore) Delete(_ context.Context, recordID string) error {
	if _, ok := s.records[recordID]; !ok {
		return types.ErrHousingRecordNotFound
	}
	delete(s.records, recordID)
	return nil
}

type fakeBacklogStore struct {
	backlogs map[string]*types.Backlog
	seq      int
}

func newFakeBacklogStore(backlogs ...*types.Backlog) *fakeBacklogStore {
	s := &fakeBacklogStore{backlogs: make(map[string]*types.Backlog)}
	for _, b := range backlogs {
		s.backlogs[b.ID] = b
	}
	return s
}

func (s *fakeBacklogStore) Backlog(_ context.Context, backlogID string) (*types.Backlog, error) {
	b, ok := s.backlogs[backlogID]
	if !ok {
		return nil, types.ErrBacklogNotFound
	}
	return b, nil
}

func (s *fakeBacklogStore) TupleExists(_ context.Context, districtID, villageID string, backlogType types.BacklogType, year, month int) (bool, error) {
	for _, b := range s.backlogs {
		if b.DistrictID == districtID && b.VillageID == villageID && b.BacklogType == backlogType && b.Year == year && b.Month == month {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeBacklogStore) Create(_ context.Context, backlog *types.Backlog) error {
	s.seq++
	backlog.ID = fmt.Sprintf("backlog_%d", s.seq)
	s.backlogs[backlog.ID] = backlog
	return nil
}

func (s *fakeBacklogStore) UpdateFamilyCount(_ context.Context, backlogID string, familyCount int) error {
	b, ok := s.backlogs[backlogID]
	if !ok {
		return types.ErrBacklogNotFound
	}
	b.FamilyCount = familyCount
	return nil
}

func (s *fakeBacklogStore) BacklogsByPeriodRange(_ context.Context, from, to types.Period) ([]*types.Backlog, error) {
	out := make([]*types.Backlog, 0)
	for _, b := range s.backlogs {
		p := types.Period{Year: b.Year, Month: b.Month}
		if p.Within(from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeAuditStore struct {
	entries []*types.AuditLog
	failing bool
}

func (s *fakeAuditStore) Append(_ context.Context, entry *types.AuditLog) error {
	if s.failing {
		return fmt.Errorf("append rejected")
	}
	entry.ID = fmt.Sprintf("audit_%d", len(s.entries)+1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *fakeAuditStore) Query(_ context.Context, filter types.AuditFilter) ([]*types.AuditLog, error) {
	out := make([]*types.AuditLog, 0)
	for _, e := range s.entries {
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if filter.DateFrom != nil && e.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && e.CreatedAt.After(*filter.DateTo) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeAuditStore) ByResource(_ context.Context, resourceType, resourceID string) ([]*types.AuditLog, error) {
	out := make([]*types.AuditLog, 0)
	for _, e := range s.entries {
		if e.ResourceType == resourceType && e.ResourceID != nil && *e.ResourceID == resourceID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeAuditStore) CountSince(_ context.Context, since time.Time, action types.AuditAction) (int64, error) {
	var count int64
	for _, e := range s.entries {
		if e.CreatedAt.Before(since) {
			continue
		}
		if action != "" && e.Action != action {
			continue
		}
		count++
	}
	return count, nil
}

type fakeUserStore struct {
	users map[string]*types.User
	seq   int
}

func newFakeUserStore(users ...*types.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*types.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) User(_ context.Context, userID string) (*types.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) UserByUsername(_ context.Context, username string) (*types.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (s *fakeUserStore) Create(_ context.Context, user *types.User) error {
	for _, u := range s.users {
		if u.Username == user.Username {
			return types.ErrDuplicateUser
		}
	}
	s.seq++
	user.ID = fmt.Sprintf("user_%d", s.seq)
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) SetActive(_ context.Context, userID string, active bool) error {
	u, ok := s.users[userID]
	if !ok {
		return types.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

type fakeAnalyticsStore struct {
	counts       *store.HousingCounts
	byDistrict   []*types.LocationStats
	byVillage    []*types.LocationStats
	verification []*store.StatusCount
	eligibility  []*store.CategoryCount
	monthly      []*store.MonthCount
}

func (s *fakeAnalyticsStore) HousingCounts(_ context.Context) (*store.HousingCounts, error) {
	if s.counts == nil {
		return &store.HousingCounts{}, nil
	}
	return s.counts, nil
}

func (s *fakeAnalyticsStore) StatsByDistrict(_ context.Context) ([]*types.LocationStats, error) {
	return s.byDistrict, nil
}

func (s *fakeAnalyticsStore) StatsByVillage(_ context.Context, _ string) ([]*types.LocationStats, error) {
	return s.byVillage, nil
}

func (s *fakeAnalyticsStore) VerificationCounts(_ context.Context) ([]*store.StatusCount, error) {
	return s.verification, nil
}

func (s *fakeAnalyticsStore) EligibilityCounts(_ context.Context) ([]*store.CategoryCount, error) {
	return s.eligibility, nil
}

func (s *fakeAnalyticsStore) MonthlyCounts(_ context.Context, _ int) ([]*store.MonthCount, error) {
	return s.monthly, nil
}

type fakeGISStore struct {
	points []*types.MapPoint
}

func (s *fakeGISStore) MapPoints(_ context.Context, filter types.MapFilter) ([]*types.MapPoint, error) {
	out := make([]*types.MapPoint, 0)
	for _, p := range s.points {
		if filter.DistrictID != "" && p.DistrictID != filter.DistrictID {
			continue
		}
		if filter.VillageID != "" && p.VillageID != filter.VillageID {
			continue
		}
		if filter.HousingStatus != "" && p.HousingStatus != filter.HousingStatus {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeDocumentStore struct {
	documents map[string]*types.Document
	seq       int
	failNext  bool
}

func newFakeDocumentStore(documents ...*types.Document) *fakeDocumentStore {
	s := &fakeDocumentStore{documents: make(map[string]*types.Document)}
	for _, d := range documents {
		s.documents[d.ID] = d
	}
	return s
}

func (s *fakeDocumentStore) Document(_ context.Context, documentID string) (*types.Document, error) {
	d, ok := s.documents[documentID]
	if !ok {
		return nil, types.ErrDocumentNotFound
	}
	return d, nil
}

func (s *fakeDocumentStore) DocumentsByRecord(_ context.Context, recordID string) ([]*types.Document, error) {
	out := make([]*types.Document, 0)
	for _, d := range s.documents {
		if d.HousingRecordID == recordID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *fakeDocumentStore) Create(_ context.Context, doc *types.Document) error {
	if s.failNext {
		s.failNext = false
		return fmt.Errorf("insert rejected")
	}
	s.seq++
	doc.ID = fmt.Sprintf("document_%d", s.seq)
	s.documents[doc.ID] = doc
	return nil
}

func (s *fakeDocumentStore) Delete(_ context.Context, documentID string) error {
	if _, ok := s.documents[documentID]; !ok {
		return types.ErrDocumentNotFound
	}
	delete(s.documents, documentID)
	return nil
}

type fakeBlobStore struct {
	blobs map[string]string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string]string)}
}

func (s *fakeBlobStore) Upload(_ context.Context, key, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.blobs[key] = string(data)
	return nil
}

func (s *fakeBlobStore) Delete(_ context.Context, key string) error {
	delete(s.blobs, key)
	return nil
}

func (s *fakeBlobStore) URL(key string) string {
	return "https://blobs.test/" + key
}
