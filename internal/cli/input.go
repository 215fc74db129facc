package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Input 终端输入读取器，带格式校验与重试提示。
type Input struct {
	r   *bufio.Reader
	eof bool
}

func NewInput(r io.Reader) *Input {
	return &Input{r: bufio.NewReader(r)}
}

// Line 读取一行并去掉首尾空白。读到 EOF 返回空串。
func (in *Input) Line(prompt string) string {
	fmt.Print(prompt)
	line, err := in.r.ReadString('\n')
	if err != nil {
		in.eof = true
	}
	return strings.TrimSpace(line)
}

// Int 反复读取直到拿到整数。输入流结束时返回 0。
func (in *Input) Int(prompt string) int {
	for {
		s := in.Line(prompt)
		if s == "" && in.eof {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Println("输入无效，请输入整数！")
			continue
		}
		return n
	}
}

// Float 反复读取直到拿到数字。输入流结束时返回 0。
func (in *Input) Float(prompt string) float64 {
	for {
		s := in.Line(prompt)
		if s == "" && in.eof {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			fmt.Println("输入无效，请输入数字！")
			continue
		}
		return f
	}
}
