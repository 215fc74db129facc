package rental

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/carrental/carrental/internal/common/logger"
	"github.com/carrental/carrental/internal/customer"
	"github.com/carrental/carrental/internal/vehicle"
)

// ---- 内存假仓库，带故障注入开关 ----

type memVehicleRepo struct {
	vehicles map[int]vehicle.Vehicle
	// updateCalls 计数，failUpdateOnCall 为正时第 N 次 Update 失败，
	// 用于分别触发第一段写失败和补偿写失败。
	updateCalls      int
	failUpdateOnCall int
}

func newMemVehicleRepo(vs ...vehicle.Vehicle) *memVehicleRepo {
	m := &memVehicleRepo{vehicles: map[int]vehicle.Vehicle{}}
	for _, v := range vs {
		m.vehicles[v.ID] = v
	}
	return m
}

func (m *memVehicleRepo) Add(_ context.Context, v *vehicle.Vehicle) error {
	v.ID = len(m.vehicles) + 1
	m.vehicles[v.ID] = *v
	return nil
}

func (m *memVehicleRepo) Update(_ context.Context, v *vehicle.Vehicle) error {
	m.updateCalls++
	if m.failUpdateOnCall > 0 && m.updateCalls == m.failUpdateOnCall {
		return fmt.Errorf("injected vehicle update failure")
	}
	if _, ok := m.vehicles[v.ID]; !ok {
		return fmt.Errorf("vehicle %d not found", v.ID)
	}
	m.vehicles[v.ID] = *v
	return nil
}

func (m *memVehicleRepo) Delete(_ context.Context, id int) error {
	delete(m.vehicles, id)
	return nil
}

func (m *memVehicleRepo) FindByID(_ context.Context, id int) (*vehicle.Vehicle, bool, error) {
	v, ok := m.vehicles[id]
	if !ok {
		return nil, false, nil
	}
	return &v, true, nil
}

func (m *memVehicleRepo) FindAll(_ context.Context) ([]vehicle.Vehicle, error) {
	var out []vehicle.Vehicle
	for _, v := range m.vehicles {
		out = append(out, v)
	}
	return out, nil
}

func (m *memVehicleRepo) NextID(_ context.Context) (int, error) {
	return len(m.vehicles) + 1, nil
}

type memCustomerRepo struct {
	customers map[int]customer.Customer
}

func newMemCustomerRepo(cs ...customer.Customer) *memCustomerRepo {
	m := &memCustomerRepo{customers: map[int]customer.Customer{}}
	for _, c := range cs {
		m.customers[c.ID] = c
	}
	return m
}

func (m *memCustomerRepo) Add(_ context.Context, c *customer.Customer) error {
	c.ID = len(m.customers) + 1
	m.customers[c.ID] = *c
	return nil
}

func (m *memCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	m.customers[c.ID] = *c
	return nil
}

func (m *memCustomerRepo) Delete(_ context.Context, id int) error {
	delete(m.customers, id)
	return nil
}

func (m *memCustomerRepo) FindByID(_ context.Context, id int) (*customer.Customer, bool, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, false, nil
	}
	return &c, true, nil
}

func (m *memCustomerRepo) FindAll(_ context.Context) ([]customer.Customer, error) {
	var out []customer.Customer
	for _, c := range m.customers {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCustomerRepo) NextID(_ context.Context) (int, error) {
	return len(m.customers) + 1, nil
}

type memRecordRepo struct {
	records    []Record
	failAdd    bool
	failUpdate bool
}

func (m *memRecordRepo) Add(_ context.Context, rec *Record) error {
	if m.failAdd {
		return fmt.Errorf("injected record add failure")
	}
	rec.ID = len(m.records) + 1
	m.records = append(m.records, *rec)
	return nil
}

func (m *memRecordRepo) Update(_ context.Context, rec *Record) error {
	if m.failUpdate {
		return fmt.Errorf("injected record update failure")
	}
	for i := range m.records {
		if m.records[i].ID == rec.ID {
			m.records[i] = *rec
			return nil
		}
	}
	return fmt.Errorf("record %d not found", rec.ID)
}

func (m *memRecordRepo) FindByID(_ context.Context, id int) (*Record, bool, error) {
	for i := range m.records {
		if m.records[i].ID == id {
			rec := m.records[i]
			return &rec, true, nil
		}
	}
	return nil, false, nil
}

func (m *memRecordRepo) FindAll(_ context.Context) ([]Record, error) {
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memRecordRepo) FindUnreturned(_ context.Context) ([]Record, error) {
	var out []Record
	for _, rec := range m.records {
		if !rec.Returned {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memRecordRepo) FindByVehicle(_ context.Context, vehicleID int) ([]Record, error) {
	var out []Record
	for _, rec := range m.records {
		if rec.Vehicle.ID == vehicleID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memRecordRepo) FindByCustomer(_ context.Context, customerID int) ([]Record, error) {
	var out []Record
	for _, rec := range m.records {
		if rec.Customer.ID == customerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memRecordRepo) NextID(_ context.Context) (int, error) {
	return len(m.records) + 1, nil
}

// ---- 测试脚手架 ----

type fixture struct {
	svc      *Service
	vehicles *memVehicleRepo
	records  *memRecordRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	vrepo := newMemVehicleRepo(
		vehicle.Vehicle{ID: 1, Category: vehicle.CategorySedan, Brand: "丰田", Model: "卡罗拉", DailyRate: 200},
		vehicle.Vehicle{ID: 2, Category: vehicle.CategoryBus, Brand: "宇通", Model: "ZK6122HQ", DailyRate: 500, Seats: 45, Rented: true},
	)
	crepo := newMemCustomerRepo(
		customer.Customer{ID: 1, Name: "张三", Tier: customer.TierRegular, Phone: "13800000001"},
		customer.Customer{ID: 2, Name: "李四", Tier: customer.TierVIP, Phone: "13800000002"},
	)
	rrepo := &memRecordRepo{}

	log, err := logger.NewLogger("error", "text", "stdout", "")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	svc := NewService(vehicle.NewService(vrepo), customer.NewService(crepo), rrepo, log)
	return &fixture{svc: svc, vehicles: vrepo, records: rrepo}
}

// checkInvariant 校验跨实体不变量：车辆 Rented 为真 当且仅当 存在未归还记录引用它。
func checkInvariant(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	all, err := f.svc.AllRecords(ctx)
	if err != nil {
		t.Fatalf("AllRecords: %v", err)
	}
	for _, v := range f.vehicles.vehicles {
		hasOpen := false
		for _, rec := range all {
			if rec.Vehicle.ID == v.ID && !rec.Returned {
				hasOpen = true
			}
		}
		if v.Rented != hasOpen {
			t.Fatalf("invariant broken: vehicle %d rented=%v, open record=%v", v.ID, v.Rented, hasOpen)
		}
	}
}

// ---- 租车 ----

func TestRentSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Rent(ctx, 1, 2, 3)
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	if rec.ID != 1 {
		t.Fatalf("expected record id 1, got %d", rec.ID)
	}
	if rec.Returned {
		t.Fatalf("new record must not be returned")
	}
	if rec.ReturnDate != nil {
		t.Fatalf("new record must have nil return date")
	}
	if rec.RentalDays != 3 {
		t.Fatalf("expected 3 rental days, got %d", rec.RentalDays)
	}
	// VIP 95折：200 * 3 * 0.95
	if rec.TotalRent != 570 {
		t.Fatalf("expected total 570, got %v", rec.TotalRent)
	}
	if rec.Vehicle.ID != 1 || rec.Vehicle.Brand != "丰田" {
		t.Fatalf("unexpected vehicle snapshot: %+v", rec.Vehicle)
	}
	if rec.Customer.ID != 2 || rec.Customer.Tier != customer.TierVIP {
		t.Fatalf("unexpected customer snapshot: %+v", rec.Customer)
	}

	if v := f.vehicles.vehicles[1]; !v.Rented {
		t.Fatalf("vehicle 1 should be rented")
	}
	checkInvariant(t, f)
}

func TestRentVehicleUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 已租出的车辆
	if _, err := f.svc.Rent(ctx, 2, 1, 3); !errors.Is(err, ErrVehicleUnavailable) {
		t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
	}
	// 不存在的车辆
	if _, err := f.svc.Rent(ctx, 99, 1, 3); !errors.Is(err, ErrVehicleUnavailable) {
		t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
	}

	if len(f.records.records) != 0 {
		t.Fatalf("no record should be created, got %d", len(f.records.records))
	}
	if v := f.vehicles.vehicles[1]; v.Rented {
		t.Fatalf("vehicle 1 flag must be unchanged")
	}
}

func TestRentCustomerNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Rent(ctx, 1, 99, 3); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if v := f.vehicles.vehicles[1]; v.Rented {
		t.Fatalf("vehicle 1 flag must be unchanged on precondition failure")
	}
	if len(f.records.records) != 0 {
		t.Fatalf("no record should be created")
	}
}

func TestRentInvalidDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, days := range []int{0, -1} {
		if _, err := f.svc.Rent(ctx, 1, 1, days); !errors.Is(err, ErrInvalidDays) {
			t.Fatalf("days=%d: expected ErrInvalidDays, got %v", days, err)
		}
	}
}

func TestRentRollbackOnRecordFailure(t *testing.T) {
	f := newFixture(t)
	f.records.failAdd = true
	ctx := context.Background()

	_, err := f.svc.Rent(ctx, 1, 1, 2)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	// 补偿动作必须把车辆标志翻回可租
	if v := f.vehicles.vehicles[1]; v.Rented {
		t.Fatalf("vehicle 1 flag must be rolled back to available")
	}
	if len(f.records.records) != 0 {
		t.Fatalf("no record should persist after rollback")
	}
	checkInvariant(t, f)
}

func TestRentRollbackItselfFails(t *testing.T) {
	f := newFixture(t)
	f.records.failAdd = true
	// 第 1 次 Update 是 MarkRented（成功），第 2 次是补偿 MarkAvailable（失败）
	f.vehicles.failUpdateOnCall = 2
	ctx := context.Background()

	_, err := f.svc.Rent(ctx, 1, 1, 2)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	// 已知的不一致状态：标志仍为已租出，但没有记录。错误需同时包含两次失败。
	if v := f.vehicles.vehicles[1]; !v.Rented {
		t.Fatalf("vehicle 1 flag should remain rented when rollback fails")
	}
	if got := err.Error(); !strings.Contains(got, "rollback failed") {
		t.Fatalf("error should mention rollback failure, got %q", got)
	}
}

// ---- 还车 ----

func TestReturnSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Rent(ctx, 1, 2, 3)
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}

	ret, err := f.svc.Return(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Return: %v", err)
	}
	if !ret.Returned {
		t.Fatalf("record must be returned")
	}
	if ret.ReturnDate == nil {
		t.Fatalf("return date must be set")
	}
	if ret.ReturnDate.Before(ret.RentalDate) {
		t.Fatalf("return date %v before rental date %v", ret.ReturnDate, ret.RentalDate)
	}
	if v := f.vehicles.vehicles[1]; v.Rented {
		t.Fatalf("vehicle 1 should be available again")
	}
	checkInvariant(t, f)
}

func TestReturnRecordNotFound(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Return(context.Background(), 42); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestReturnAlreadyReturned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Rent(ctx, 1, 1, 1)
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	if _, err := f.svc.Return(ctx, rec.ID); err != nil {
		t.Fatalf("first Return: %v", err)
	}

	before := f.vehicles.vehicles[1]
	if _, err := f.svc.Return(ctx, rec.ID); !errors.Is(err, ErrAlreadyReturned) {
		t.Fatalf("expected ErrAlreadyReturned, got %v", err)
	}
	if after := f.vehicles.vehicles[1]; after.Rented != before.Rented {
		t.Fatalf("state must not change on AlreadyReturned")
	}
	checkInvariant(t, f)
}

func TestReturnRollbackOnUpdateFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Rent(ctx, 1, 1, 2)
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}

	f.records.failUpdate = true
	if _, err := f.svc.Return(ctx, rec.ID); !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	// 补偿动作把车辆标志翻回已租出，记录保持未归还
	if v := f.vehicles.vehicles[1]; !v.Rented {
		t.Fatalf("vehicle 1 flag must be rolled back to rented")
	}
	stored, ok, err := f.records.FindByID(ctx, rec.ID)
	if err != nil || !ok {
		t.Fatalf("FindByID: ok=%v err=%v", ok, err)
	}
	if stored.Returned {
		t.Fatalf("stored record must remain unreturned")
	}
	checkInvariant(t, f)
}

// ---- 查询 ----

func TestUnreturnedRecordsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Rent(ctx, 1, 1, 2); err != nil {
		t.Fatalf("Rent: %v", err)
	}

	first, err := f.svc.UnreturnedRecords(ctx)
	if err != nil {
		t.Fatalf("UnreturnedRecords: %v", err)
	}
	second, err := f.svc.UnreturnedRecords(ctx)
	if err != nil {
		t.Fatalf("UnreturnedRecords: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("query must be idempotent without mutation:\n%v\n%v", first, second)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 unreturned record, got %d", len(first))
	}
}

func TestRecordsByVehicleAndCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Rent(ctx, 1, 2, 3)
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	if _, err := f.svc.Return(ctx, rec.ID); err != nil {
		t.Fatalf("Return: %v", err)
	}
	// 同一辆车再租给另一个客户
	if _, err := f.svc.Rent(ctx, 1, 1, 1); err != nil {
		t.Fatalf("second Rent: %v", err)
	}

	byVehicle, err := f.svc.RecordsByVehicle(ctx, 1)
	if err != nil {
		t.Fatalf("RecordsByVehicle: %v", err)
	}
	if len(byVehicle) != 2 {
		t.Fatalf("expected 2 records for vehicle 1, got %d", len(byVehicle))
	}

	byCustomer, err := f.svc.RecordsByCustomer(ctx, 2)
	if err != nil {
		t.Fatalf("RecordsByCustomer: %v", err)
	}
	if len(byCustomer) != 1 {
		t.Fatalf("expected 1 record for customer 2, got %d", len(byCustomer))
	}

	// 未命中返回空集
	none, err := f.svc.RecordsByCustomer(ctx, 99)
	if err != nil {
		t.Fatalf("RecordsByCustomer: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty result, got %d", len(none))
	}
}

func TestQuoteNoSideEffects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	quote, err := f.svc.Quote(ctx, 1, 2, 3)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote != 570 {
		t.Fatalf("expected quote 570, got %v", quote)
	}
	if v := f.vehicles.vehicles[1]; v.Rented {
		t.Fatalf("Quote must not mutate vehicle state")
	}
	if len(f.records.records) != 0 {
		t.Fatalf("Quote must not create records")
	}
}

func TestRentUsesInjectedClock(t *testing.T) {
	f := newFixture(t)
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return fixed }

	rec, err := f.svc.Rent(context.Background(), 1, 1, 2)
	if err != nil {
		t.Fatalf("Rent: %v", err)
	}
	if !rec.RentalDate.Equal(fixed) {
		t.Fatalf("expected rental date %v, got %v", fixed, rec.RentalDate)
	}
}

