package reportdb

import (
	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/schema"
	"github.com/stretchr/testify/mock"
)

// MockReportManager is a mock implementation of ReportManager for testing.
type MockReportManager struct {
	mock.Mock
}

var _ contract.ReportManager = &MockReportManager{} // Compile-time check

// GetReportStore implements the ReportManager interface.
func (m *MockReportManager) GetReportStore() contract.ReportStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ReportStore)
	return store
}

// MockReportStore is a mock implementation of ReportStore for testing.
type MockReportStore struct {
	mock.Mock
}

var _ contract.ReportStore = &MockReportStore{} // Compile-time check

// SaveReport implements the ReportStore interface.
func (m *MockReportStore) SaveReport(report *schema.Report) (string, error) {
	args := m.Called(report)
	return args.String(0), args.Error(1)
}

// GetStatus implements the ReportStore interface.
func (m *MockReportStore) GetStatus() (schema.ReportStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ReportStatus), args.Error(1)
}

// LoadDayRows implements the ReportStore interface.
func (m *MockReportStore) LoadDayRows() ([]schema.DayRowRecord, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.DayRowRecord)
	return rows, args.Error(1)
}

// LoadBaselineRows implements the ReportStore interface.
func (m *MockReportStore) LoadBaselineRows() ([]schema.BaselineRowRecord, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.BaselineRowRecord)
	return rows, args.Error(1)
}

// Close implements the ReportStore interface.
func (m *MockReportStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
