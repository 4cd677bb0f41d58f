//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/markkurossi/abyc/compiler/utils"
)

// Output file kinds.
const (
	KindConst          = "const"
	KindShareMap       = "share_map"
	KindBytecode       = "bytecode"
	KindBytecodeOutput = "bytecode_output"
)

// output holds the pending output lines and knows the output file
// layout.
type output struct {
	dir    string
	prefix string
	limit  int
	logger *utils.Logger

	consts   []string
	shares   []string
	bytecode []string

	// inputs maps input display names to their input instructions.
	inputs map[string]string
}

func newOutput(dir, stem, lang string, limit int,
	logger *utils.Logger) *output {

	return &output{
		dir:    dir,
		prefix: fmt.Sprintf("%s_%s", stem, lang),
		limit:  limit,
		logger: logger,
		inputs: make(map[string]string),
	}
}

// Path returns the path of the output file of the kind. The
// per-computation kinds are prefixed with the computation name.
func (out *output) Path(comp, kind string) string {
	var name string
	if len(comp) > 0 {
		name = fmt.Sprintf("%s_%s_%s.txt", out.prefix, comp, kind)
	} else {
		name = fmt.Sprintf("%s_%s.txt", out.prefix, kind)
	}
	return filepath.Join(out.dir, name)
}

// OutputPath returns the path of the output file of the kind for
// the program stem and dialect label.
func OutputPath(dir, stem, lang, comp, kind string) string {
	return newOutput(dir, stem, lang, 0, nil).Path(comp, kind)
}

// Stem returns the output file name stem for the input file name.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func truncate(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return f.Close()
}

func appendLines(path string, lines []string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// flush writes the pending lines of the buffers that have grown over
// the limit. If force is set, all pending lines are written.
func (out *output) flush(comp string, force bool) error {
	if force && out.logger != nil {
		out.logger.Tracef("flush %s: consts=%d, shares=%d, bytecode=%d",
			comp, len(out.consts), len(out.shares), len(out.bytecode))
	}
	if force || len(out.consts) > out.limit {
		if err := appendLines(out.Path("", KindConst), out.consts); err != nil {
			return err
		}
		out.consts = out.consts[:0]
	}
	if force || len(out.shares) > out.limit {
		err := appendLines(out.Path("", KindShareMap), out.shares)
		if err != nil {
			return err
		}
		out.shares = out.shares[:0]
	}
	if len(comp) > 0 && (force || len(out.bytecode) > out.limit) {
		err := appendLines(out.Path(comp, KindBytecodeOutput), out.bytecode)
		if err != nil {
			return err
		}
		out.bytecode = out.bytecode[:0]
	}
	return nil
}

// merge writes the computation's input section followed by the
// flushed output section into the final bytecode file. The output
// section file is removed after a successful merge.
func (out *output) merge(comp string, inputs []string) (err error) {
	path := out.Path(comp, KindBytecode)
	tmp := out.Path(comp, KindBytecodeOutput)

	defer func() {
		if err != nil {
			os.Remove(path)
		}
	}()

	if err = truncate(path); err != nil {
		return err
	}
	if err = appendLines(path, inputs); err != nil {
		return err
	}

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	src, err := os.Open(tmp)
	if err != nil {
		dst.Close()
		return err
	}
	_, err = io.Copy(dst, src)
	src.Close()
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return os.Remove(tmp)
}

// reset clears the per-computation buffers.
func (out *output) reset() {
	out.bytecode = out.bytecode[:0]
	out.inputs = make(map[string]string)
}
