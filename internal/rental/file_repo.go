package rental

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/carrental/carrental/internal/customer"
	"github.com/carrental/carrental/internal/storage"
	"github.com/carrental/carrental/internal/vehicle"
)

// dateLayout 记录文件中的日期格式。
const dateLayout = "2006-01-02"

// 记录文件中的归还状态标记。
const (
	statusReturned    = "已归还"
	statusOutstanding = "未归还"
)

// FileRepo 基于逐行文本文件的租赁记录存储。
// 行格式：ID,车辆ID,客户ID,租赁日期,归还日期|null,总租金,已归还|未归还
// 文件里只存车辆/客户的 ID，加载时通过对应存储还原快照；
// 实体在此期间被删除时退化为只含 ID 的快照。
type FileRepo struct {
	file      *storage.TextFile
	vehicles  vehicle.Repo
	customers customer.Repo
	records   []Record
}

func NewFileRepo(path string, vehicles vehicle.Repo, customers customer.Repo) (*FileRepo, error) {
	r := &FileRepo{
		file:      storage.NewTextFile(path),
		vehicles:  vehicles,
		customers: customers,
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) Add(_ context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}
	rec.ID = r.nextID()
	r.records = append(r.records, *rec)
	if err := r.save(); err != nil {
		r.records = r.records[:len(r.records)-1]
		return err
	}
	return nil
}

func (r *FileRepo) Update(_ context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}
	for i := range r.records {
		if r.records[i].ID == rec.ID {
			old := r.records[i]
			r.records[i] = *rec
			if err := r.save(); err != nil {
				r.records[i] = old
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("record %d not found", rec.ID)
}

func (r *FileRepo) FindByID(_ context.Context, id int) (*Record, bool, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			return &rec, true, nil
		}
	}
	return nil, false, nil
}

func (r *FileRepo) FindAll(_ context.Context) ([]Record, error) {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *FileRepo) FindUnreturned(ctx context.Context) ([]Record, error) {
	return r.filter(func(rec Record) bool { return !rec.Returned })
}

func (r *FileRepo) FindByVehicle(_ context.Context, vehicleID int) ([]Record, error) {
	return r.filter(func(rec Record) bool { return rec.Vehicle.ID == vehicleID })
}

func (r *FileRepo) FindByCustomer(_ context.Context, customerID int) ([]Record, error) {
	return r.filter(func(rec Record) bool { return rec.Customer.ID == customerID })
}

func (r *FileRepo) NextID(_ context.Context) (int, error) {
	return r.nextID(), nil
}

func (r *FileRepo) filter(keep func(Record) bool) ([]Record, error) {
	var out []Record
	for i := range r.records {
		if keep(r.records[i]) {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *FileRepo) nextID() int {
	maxID := 0
	for i := range r.records {
		if r.records[i].ID > maxID {
			maxID = r.records[i].ID
		}
	}
	return maxID + 1
}

func (r *FileRepo) load() error {
	lines, err := r.file.ReadLines()
	if err != nil {
		return err
	}
	r.records = r.records[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := r.parseRecordLine(line)
		if err != nil {
			continue
		}
		r.records = append(r.records, rec)
	}
	return nil
}

func (r *FileRepo) save() error {
	lines := make([]string, 0, len(r.records))
	for i := range r.records {
		lines = append(lines, formatRecordLine(r.records[i]))
	}
	return r.file.WriteLines(lines)
}

func (r *FileRepo) parseRecordLine(line string) (Record, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 7 {
		return Record{}, fmt.Errorf("record line has %d fields, want 7", len(parts))
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return Record{}, fmt.Errorf("bad record id: %w", err)
	}
	vehicleID, err := strconv.Atoi(parts[1])
	if err != nil {
		return Record{}, fmt.Errorf("bad vehicle id: %w", err)
	}
	customerID, err := strconv.Atoi(parts[2])
	if err != nil {
		return Record{}, fmt.Errorf("bad customer id: %w", err)
	}
	rentalDate, err := time.Parse(dateLayout, parts[3])
	if err != nil {
		return Record{}, fmt.Errorf("bad rental date: %w", err)
	}
	var returnDate *time.Time
	if parts[4] != "null" {
		t, err := time.Parse(dateLayout, parts[4])
		if err != nil {
			return Record{}, fmt.Errorf("bad return date: %w", err)
		}
		returnDate = &t
	}
	totalRent, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return Record{}, fmt.Errorf("bad total rent: %w", err)
	}

	rec := Record{
		ID:         id,
		Vehicle:    r.resolveVehicle(vehicleID),
		Customer:   r.resolveCustomer(customerID),
		RentalDate: rentalDate,
		ReturnDate: returnDate,
		TotalRent:  totalRent,
		Returned:   parts[6] == statusReturned,
	}
	return rec, nil
}

func formatRecordLine(rec Record) string {
	returnDate := "null"
	if rec.ReturnDate != nil {
		returnDate = rec.ReturnDate.Format(dateLayout)
	}
	status := statusOutstanding
	if rec.Returned {
		status = statusReturned
	}
	return fmt.Sprintf("%d,%d,%d,%s,%s,%.2f,%s",
		rec.ID, rec.Vehicle.ID, rec.Customer.ID,
		rec.RentalDate.Format(dateLayout), returnDate, rec.TotalRent, status)
}

func (r *FileRepo) resolveVehicle(id int) VehicleSnapshot {
	if r.vehicles != nil {
		if v, ok, err := r.vehicles.FindByID(context.Background(), id); err == nil && ok {
			return snapshotVehicle(v)
		}
	}
	return VehicleSnapshot{ID: id}
}

func (r *FileRepo) resolveCustomer(id int) CustomerSnapshot {
	if r.customers != nil {
		if c, ok, err := r.customers.FindByID(context.Background(), id); err == nil && ok {
			return snapshotCustomer(c)
		}
	}
	return CustomerSnapshot{ID: id}
}
