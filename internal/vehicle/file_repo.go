package vehicle

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/carrental/carrental/internal/storage"
)

// FileRepo 基于逐行文本文件的车辆存储。集合整体驻留内存，
// 每次变更后立刻整体重写文件（write-through）。
// 行格式：ID,类别,品牌 型号,0,0,日租金,座位数,是否可租
// 中间两个 0 是历史格式占位字段（购买年份、购买价格），保留以兼容旧数据文件。
type FileRepo struct {
	file     *storage.TextFile
	vehicles []Vehicle
}

func NewFileRepo(path string) (*FileRepo, error) {
	r := &FileRepo{file: storage.NewTextFile(path)}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) Add(_ context.Context, v *Vehicle) error {
	if v == nil {
		return fmt.Errorf("vehicle is nil")
	}
	v.ID = r.nextID()
	r.vehicles = append(r.vehicles, *v)
	if err := r.save(); err != nil {
		r.vehicles = r.vehicles[:len(r.vehicles)-1]
		return err
	}
	return nil
}

func (r *FileRepo) Update(_ context.Context, v *Vehicle) error {
	if v == nil {
		return fmt.Errorf("vehicle is nil")
	}
	for i := range r.vehicles {
		if r.vehicles[i].ID == v.ID {
			old := r.vehicles[i]
			r.vehicles[i] = *v
			if err := r.save(); err != nil {
				r.vehicles[i] = old
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("vehicle %d not found", v.ID)
}

func (r *FileRepo) Delete(_ context.Context, id int) error {
	for i := range r.vehicles {
		if r.vehicles[i].ID == id {
			old := r.vehicles[i]
			r.vehicles = append(r.vehicles[:i], r.vehicles[i+1:]...)
			if err := r.save(); err != nil {
				r.vehicles = append(r.vehicles, old)
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("vehicle %d not found", id)
}

func (r *FileRepo) FindByID(_ context.Context, id int) (*Vehicle, bool, error) {
	for i := range r.vehicles {
		if r.vehicles[i].ID == id {
			v := r.vehicles[i]
			return &v, true, nil
		}
	}
	return nil, false, nil
}

func (r *FileRepo) FindAll(_ context.Context) ([]Vehicle, error) {
	out := make([]Vehicle, len(r.vehicles))
	copy(out, r.vehicles)
	return out, nil
}

func (r *FileRepo) NextID(_ context.Context) (int, error) {
	return r.nextID(), nil
}

func (r *FileRepo) nextID() int {
	maxID := 0
	for i := range r.vehicles {
		if r.vehicles[i].ID > maxID {
			maxID = r.vehicles[i].ID
		}
	}
	return maxID + 1
}

func (r *FileRepo) load() error {
	lines, err := r.file.ReadLines()
	if err != nil {
		return err
	}
	r.vehicles = r.vehicles[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		v, err := parseVehicleLine(line)
		if err != nil {
			// 坏行跳过，不让单行损坏拖垮整个集合
			continue
		}
		r.vehicles = append(r.vehicles, v)
	}
	return nil
}

func (r *FileRepo) save() error {
	lines := make([]string, 0, len(r.vehicles))
	for i := range r.vehicles {
		lines = append(lines, formatVehicleLine(r.vehicles[i]))
	}
	return r.file.WriteLines(lines)
}

func parseVehicleLine(line string) (Vehicle, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 8 {
		return Vehicle{}, fmt.Errorf("vehicle line has %d fields, want 8", len(parts))
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return Vehicle{}, fmt.Errorf("bad vehicle id: %w", err)
	}
	category, err := ParseCategory(parts[1])
	if err != nil {
		return Vehicle{}, err
	}
	rate, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return Vehicle{}, fmt.Errorf("bad daily rate: %w", err)
	}
	seats, err := strconv.Atoi(parts[6])
	if err != nil {
		return Vehicle{}, fmt.Errorf("bad seat count: %w", err)
	}
	available, err := strconv.ParseBool(parts[7])
	if err != nil {
		return Vehicle{}, fmt.Errorf("bad availability flag: %w", err)
	}

	v := Vehicle{
		ID:        id,
		Category:  category,
		DailyRate: rate,
		Seats:     seats,
		Rented:    !available,
	}
	brandModel := strings.SplitN(parts[2], " ", 2)
	if len(brandModel) > 0 {
		v.Brand = brandModel[0]
	}
	if len(brandModel) > 1 {
		v.Model = brandModel[1]
	}
	return v, nil
}

func formatVehicleLine(v Vehicle) string {
	return fmt.Sprintf("%d,%s,%s %s,0,0,%.2f,%d,%t",
		v.ID, v.Category, v.Brand, v.Model, v.DailyRate, defaultSeats(v), !v.Rented)
}
