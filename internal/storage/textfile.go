package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// TextFile 逐行读写的文本文件，每个实体集合对应一个文件。
// 文件不存在视为空集合，写入总是整体重写。
type TextFile struct {
	path string
}

func NewTextFile(path string) *TextFile {
	return &TextFile{path: path}
}

func (f *TextFile) Path() string {
	return f.path
}

// ReadLines 读取全部行。文件不存在返回空切片，不报错。
func (f *TextFile) ReadLines() ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return lines, nil
}

// WriteLines 整体重写文件内容。
func (f *TextFile) WriteLines(lines []string) error {
	if err := f.ensureDir(); err != nil {
		return err
	}
	file, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write %s: %w", f.path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", f.path, err)
	}
	return nil
}

// AppendLine 向文件末尾追加一行。
func (f *TextFile) AppendLine(line string) error {
	if err := f.ensureDir(); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append %s: %w", f.path, err)
	}
	return nil
}

func (f *TextFile) ensureDir() error {
	dir := filepath.Dir(f.path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
