package rental

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/carrental/carrental/internal/customer"
	"github.com/carrental/carrental/internal/storage"
	"github.com/carrental/carrental/internal/vehicle"
)

func newFileFixture(t *testing.T) (dir string, vrepo *vehicle.FileRepo, crepo *customer.FileRepo, rrepo *FileRepo) {
	t.Helper()
	dir = t.TempDir()

	vrepo, err := vehicle.NewFileRepo(filepath.Join(dir, "vehicles.txt"))
	if err != nil {
		t.Fatalf("vehicle.NewFileRepo: %v", err)
	}
	crepo, err = customer.NewFileRepo(filepath.Join(dir, "customers.txt"))
	if err != nil {
		t.Fatalf("customer.NewFileRepo: %v", err)
	}
	rrepo, err = NewFileRepo(filepath.Join(dir, "records.txt"), vrepo, crepo)
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}

	ctx := context.Background()
	if err := vrepo.Add(ctx, &vehicle.Vehicle{Category: vehicle.CategorySedan, Brand: "丰田", Model: "卡罗拉", DailyRate: 200}); err != nil {
		t.Fatalf("add vehicle: %v", err)
	}
	if err := crepo.Add(ctx, &customer.Customer{Name: "张三", Tier: customer.TierVIP, Phone: "13800000001"}); err != nil {
		t.Fatalf("add customer: %v", err)
	}
	return dir, vrepo, crepo, rrepo
}

func TestFileRepoPersistsRecordFormat(t *testing.T) {
	dir, _, _, rrepo := newFileFixture(t)
	ctx := context.Background()

	rec := &Record{
		Vehicle:    VehicleSnapshot{ID: 1, Category: vehicle.CategorySedan, Brand: "丰田", Model: "卡罗拉", DailyRate: 200},
		Customer:   CustomerSnapshot{ID: 1, Name: "张三", Tier: customer.TierVIP},
		RentalDate: time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local),
		RentalDays: 3,
		TotalRent:  570,
	}
	if err := rrepo.Add(ctx, rec); err != nil {
		t.Fatalf("Add: %v", err)
	}

	lines, err := storage.NewTextFile(filepath.Join(dir, "records.txt")).ReadLines()
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	// 未归还记录：归还日期为 null，状态为 未归还
	if want := "1,1,1,2024-05-01,null,570.00,未归还"; lines[0] != want {
		t.Fatalf("line = %q, want %q", lines[0], want)
	}

	returnedAt := time.Date(2024, 5, 4, 18, 0, 0, 0, time.Local)
	rec.ReturnDate = &returnedAt
	rec.Returned = true
	if err := rrepo.Update(ctx, rec); err != nil {
		t.Fatalf("Update: %v", err)
	}

	lines, err = storage.NewTextFile(filepath.Join(dir, "records.txt")).ReadLines()
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if !strings.HasSuffix(lines[0], "已归还") {
		t.Fatalf("expected 已归还 status, got %q", lines[0])
	}
}

func TestFileRepoReloadResolvesSnapshots(t *testing.T) {
	dir, vrepo, crepo, rrepo := newFileFixture(t)
	ctx := context.Background()

	rec := &Record{
		Vehicle:    VehicleSnapshot{ID: 1, Brand: "丰田", Model: "卡罗拉", DailyRate: 200},
		Customer:   CustomerSnapshot{ID: 1, Name: "张三", Tier: customer.TierVIP},
		RentalDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		RentalDays: 3,
		TotalRent:  570,
	}
	if err := rrepo.Add(ctx, rec); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// 重新打开，模拟进程重启后的加载
	reloaded, err := NewFileRepo(filepath.Join(dir, "records.txt"), vrepo, crepo)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok, err := reloaded.FindByID(ctx, rec.ID)
	if err != nil || !ok {
		t.Fatalf("FindByID: ok=%v err=%v", ok, err)
	}
	if got.Vehicle.Brand != "丰田" || got.Vehicle.DailyRate != 200 {
		t.Fatalf("vehicle snapshot not resolved: %+v", got.Vehicle)
	}
	if got.Customer.Name != "张三" || got.Customer.Tier != customer.TierVIP {
		t.Fatalf("customer snapshot not resolved: %+v", got.Customer)
	}
	if got.Returned || got.ReturnDate != nil {
		t.Fatalf("reloaded record must be unreturned: %+v", got)
	}
}

func TestFileRepoReloadWithDeletedCustomer(t *testing.T) {
	dir, vrepo, crepo, rrepo := newFileFixture(t)
	ctx := context.Background()

	rec := &Record{
		Vehicle:    VehicleSnapshot{ID: 1},
		Customer:   CustomerSnapshot{ID: 1},
		RentalDate: time.Now(),
		RentalDays: 1,
		TotalRent:  200,
	}
	if err := rrepo.Add(ctx, rec); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// 客户被删除后（宽松策略允许），记录退化为只含 ID 的快照
	if err := crepo.Delete(ctx, 1); err != nil {
		t.Fatalf("delete customer: %v", err)
	}

	reloaded, err := NewFileRepo(filepath.Join(dir, "records.txt"), vrepo, crepo)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok, err := reloaded.FindByID(ctx, rec.ID)
	if err != nil || !ok {
		t.Fatalf("FindByID: ok=%v err=%v", ok, err)
	}
	if got.Customer.ID != 1 || got.Customer.Name != "" {
		t.Fatalf("expected id-only customer snapshot, got %+v", got.Customer)
	}
}
