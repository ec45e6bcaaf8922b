// internal/billing/service.go

package billing

// Service 账单与报表的查询服务，只读，不参与调度路径
type Service struct {
	query Query
}

func NewService(query Query) *Service {
	return &Service{query: query}
}

// Bill 房间账单：累计能耗、费用与详单条数
type Bill struct {
	RoomID      int     `json:"room_id"`
	TotalEnergy float64 `json:"total_energy"`
	TotalCost   float64 `json:"total_cost"`
	RecordCount int     `json:"record_count"`
}

// GenerateBill 生成房间账单
func (s *Service) GenerateBill(roomID int) (*Bill, error) {
	totals, err := s.query.RoomTotal(roomID)
	if err != nil {
		return nil, err
	}
	records, err := s.query.RoomRecords(roomID)
	if err != nil {
		return nil, err
	}
	return &Bill{
		RoomID:      roomID,
		TotalEnergy: totals.Energy,
		TotalCost:   totals.Cost,
		RecordCount: len(records),
	}, nil
}

// GetDetails 房间详单，按开始时间升序
func (s *Service) GetDetails(roomID int) ([]Record, error) {
	return s.query.RoomRecords(roomID)
}

// SummaryReport 全局汇总报表，start/end 为模拟时钟上的可选区间
func (s *Service) SummaryReport(start, end *float64) (Totals, error) {
	return s.query.Summary(start, end)
}
