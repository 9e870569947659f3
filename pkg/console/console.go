package console

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"

	ct "github.com/daviddengcn/go-colortext"
)

type Console struct {
	Output  io.Writer
	Padding int
	// Color toggles terminal escapes; ct writes them to stdout only.
	Color bool

	sync.Mutex
}

var colors = []ct.Color{
	ct.Cyan,
	ct.Yellow,
	ct.Green,
	ct.Magenta,
	ct.Red,
	ct.Blue,
}

// LineReader copies r to the console one prefixed line at a time until r is
// exhausted.
func (of *Console) LineReader(wg *sync.WaitGroup, name string, index int, r io.Reader, isError bool) {
	defer wg.Done()

	var color ct.Color
	if index == -1 {
		color = ct.White
	} else {
		color = colors[index%len(colors)]
	}

	reader := bufio.NewReader(r)

	var buffer bytes.Buffer

	for {
		buf := make([]byte, 1024)

		n, err := reader.Read(buf)
		if err != nil {
			if buffer.Len() > 0 {
				of.WriteLine(name, buffer.String(), color, ct.None, isError)
			}
			return
		}
		buf = buf[:n]

		for {
			i := bytes.IndexByte(buf, '\n')
			if i < 0 {
				break
			}
			buffer.Write(buf[0:i])
			of.WriteLine(name, buffer.String(), color, ct.None, isError)
			buffer.Reset()
			buf = buf[i+1:]
		}

		buffer.Write(buf)
	}
}

// Write out a single coloured line
func (of *Console) WriteLine(left, right string, leftC, rightC ct.Color, isError bool) {
	of.Lock()
	defer of.Unlock()

	of.changeColor(leftC, true, ct.None, false)
	formatter := fmt.Sprintf("%%-%ds | ", of.Padding)
	fmt.Fprintf(of.Output, formatter, left)

	if isError {
		of.changeColor(ct.Red, true, ct.None, true)
	} else if rightC != ct.None {
		of.changeColor(rightC, false, ct.None, false)
	} else {
		of.resetColor()
	}
	fmt.Fprintln(of.Output, right)
	of.resetColor()
}

func (of *Console) changeColor(fg ct.Color, fgBright bool, bg ct.Color, bgBright bool) {
	if of.Color {
		ct.ChangeColor(fg, fgBright, bg, bgBright)
	}
}

func (of *Console) resetColor() {
	if of.Color {
		ct.ResetColor()
	}
}
