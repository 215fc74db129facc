package vehicle

import "context"

// sampleFleet 空库时写入的示例车辆。
var sampleFleet = []Vehicle{
	{Category: CategorySedan, Brand: "丰田", Model: "卡罗拉", DailyRate: 200, Transmission: "自动"},
	{Category: CategorySedan, Brand: "本田", Model: "思域", DailyRate: 220, Transmission: "手动"},
	{Category: CategorySedan, Brand: "大众", Model: "帕萨特", DailyRate: 260, Transmission: "自动"},
	{Category: CategoryVan, Brand: "福田", Model: "风景", DailyRate: 300, LoadCapacity: 2.5},
	{Category: CategoryVan, Brand: "金杯", Model: "海狮", DailyRate: 320, LoadCapacity: 3.0},
	{Category: CategoryBus, Brand: "宇通", Model: "ZK6122HQ", DailyRate: 500, Seats: 45},
	{Category: CategoryBus, Brand: "金龙", Model: "XMQ6118AY", DailyRate: 450, Seats: 40},
	{Category: CategoryCoach, Brand: "丰田", Model: "考斯特", DailyRate: 600, Seats: 23},
}

// SeedSampleFleet 车辆集合为空时写入示例数据，返回写入条数。
func (s *Service) SeedSampleFleet(ctx context.Context) (int, error) {
	existing, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i := range sampleFleet {
		v := sampleFleet[i]
		if err := s.Add(ctx, &v); err != nil {
			return i, err
		}
	}
	return len(sampleFleet), nil
}
