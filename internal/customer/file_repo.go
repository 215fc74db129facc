package customer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/carrental/carrental/internal/storage"
)

// FileRepo 基于逐行文本文件的客户存储，每次变更后整体重写。
// 行格式：ID,姓名,等级,电话
type FileRepo struct {
	file      *storage.TextFile
	customers []Customer
}

func NewFileRepo(path string) (*FileRepo, error) {
	r := &FileRepo{file: storage.NewTextFile(path)}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) Add(_ context.Context, c *Customer) error {
	if c == nil {
		return fmt.Errorf("customer is nil")
	}
	c.ID = r.nextID()
	r.customers = append(r.customers, *c)
	if err := r.save(); err != nil {
		r.customers = r.customers[:len(r.customers)-1]
		return err
	}
	return nil
}

func (r *FileRepo) Update(_ context.Context, c *Customer) error {
	if c == nil {
		return fmt.Errorf("customer is nil")
	}
	for i := range r.customers {
		if r.customers[i].ID == c.ID {
			old := r.customers[i]
			r.customers[i] = *c
			if err := r.save(); err != nil {
				r.customers[i] = old
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("customer %d not found", c.ID)
}

func (r *FileRepo) Delete(_ context.Context, id int) error {
	for i := range r.customers {
		if r.customers[i].ID == id {
			old := r.customers[i]
			r.customers = append(r.customers[:i], r.customers[i+1:]...)
			if err := r.save(); err != nil {
				r.customers = append(r.customers, old)
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("customer %d not found", id)
}

func (r *FileRepo) FindByID(_ context.Context, id int) (*Customer, bool, error) {
	for i := range r.customers {
		if r.customers[i].ID == id {
			c := r.customers[i]
			return &c, true, nil
		}
	}
	return nil, false, nil
}

func (r *FileRepo) FindAll(_ context.Context) ([]Customer, error) {
	out := make([]Customer, len(r.customers))
	copy(out, r.customers)
	return out, nil
}

func (r *FileRepo) NextID(_ context.Context) (int, error) {
	return r.nextID(), nil
}

func (r *FileRepo) nextID() int {
	maxID := 0
	for i := range r.customers {
		if r.customers[i].ID > maxID {
			maxID = r.customers[i].ID
		}
	}
	return maxID + 1
}

func (r *FileRepo) load() error {
	lines, err := r.file.ReadLines()
	if err != nil {
		return err
	}
	r.customers = r.customers[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 4 {
			continue
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		r.customers = append(r.customers, Customer{
			ID:    id,
			Name:  parts[1],
			Tier:  Tier(parts[2]), // 未知等级保留原样，折扣按普通客户回退
			Phone: parts[3],
		})
	}
	return nil
}

func (r *FileRepo) save() error {
	lines := make([]string, 0, len(r.customers))
	for i := range r.customers {
		c := r.customers[i]
		lines = append(lines, fmt.Sprintf("%d,%s,%s,%s", c.ID, c.Name, c.Tier, c.Phone))
	}
	return r.file.WriteLines(lines)
}
