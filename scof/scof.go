// Package scof reads and writes the zip score container. Each file inside
// is a muon-style dialect of "key: value" lines; bars keep their channel
// notation as raw text so decoding stays the notation package's job.
package scof

import (
	"archive/zip"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/scorefall/scorefall-ink/model"
	"github.com/scorefall/scorefall-ink/score"
)

// File is one score container: metadata, the signature list and the raw
// bars. Assembly and validation happen in the score package.
type File struct {
	Title    string
	Composer string
	Sigs     []model.Sig
	Bars     []score.BarSource
}

const (
	metaName = "meta.muon"
	sigName  = "sig.muon"
)

func barName(i int) string {
	return fmt.Sprintf("bar/%05d.muon", i)
}

// Save writes the container. The deflate codec comes from
// klauspost/compress, which is substantially faster than the standard one
// on the text-heavy entries here.
func Save(w io.Writer, f *File) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	write := func(name, content string) error {
		entry, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = entry.Write([]byte(content))
		return err
	}

	var meta strings.Builder
	fmt.Fprintf(&meta, "title: %s\n", f.Title)
	if f.Composer != "" {
		fmt.Fprintf(&meta, "composer: %s\n", f.Composer)
	}
	if err := write(metaName, meta.String()); err != nil {
		return err
	}

	var sigs strings.Builder
	for i, sig := range f.Sigs {
		if i > 0 {
			sigs.WriteByte('\n')
		}
		fmt.Fprintf(&sigs, "key: %d\n", sig.Key)
		fmt.Fprintf(&sigs, "time: %s\n", sig.Time)
		fmt.Fprintf(&sigs, "tempo: %d\n", sig.Tempo)
		fmt.Fprintf(&sigs, "swing: %d\n", sig.Swing)
	}
	if err := write(sigName, sigs.String()); err != nil {
		return err
	}

	for i, bar := range f.Bars {
		var b strings.Builder
		if bar.Sig != nil {
			fmt.Fprintf(&b, "sig: %d\n", *bar.Sig)
		}
		for _, rep := range bar.Repeat {
			fmt.Fprintf(&b, "repeat: %s\n", rep)
		}
		for _, ch := range bar.Chans {
			fmt.Fprintf(&b, "chan: %s\n", ch.Notes)
			if ch.Lyric != "" {
				fmt.Fprintf(&b, "lyric: %s\n", ch.Lyric)
			}
		}
		if err := write(barName(i), b.String()); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Load reads a container written by Save.
func Load(r io.ReaderAt, size int64) (*File, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	zr.RegisterDecompressor(zip.Deflate, func(in io.Reader) io.ReadCloser {
		return flate.NewReader(in)
	})

	f := &File{}
	var barNames []string
	for _, entry := range zr.File {
		if strings.HasPrefix(entry.Name, "bar/") {
			barNames = append(barNames, entry.Name)
		}
	}
	sort.Strings(barNames)

	read := func(name string) ([]byte, error) {
		rc, err := zr.Open(name)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if data, err := read(metaName); err == nil {
		forEachPair(data, func(key, val string) {
			switch key {
			case "title":
				f.Title = val
			case "composer":
				f.Composer = val
			}
		})
	}

	data, err := read(sigName)
	if err != nil {
		return nil, fmt.Errorf("container has no signature list: %w", err)
	}
	f.Sigs, err = parseSigs(data)
	if err != nil {
		return nil, err
	}

	for _, name := range barNames {
		data, err := read(name)
		if err != nil {
			return nil, err
		}
		bar, err := parseBar(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		f.Bars = append(f.Bars, bar)
	}
	return f, nil
}

func forEachPair(data []byte, fn func(key, val string)) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		key, val, ok := strings.Cut(line, ": ")
		if ok {
			fn(key, val)
		} else if line == "" {
			fn("", "")
		}
	}
}

func parseSigs(data []byte) ([]model.Sig, error) {
	var sigs []model.Sig
	cur := model.Sig{Swing: model.DefaultSwing}
	seen := false
	var parseErr error
	flush := func() {
		if seen {
			sigs = append(sigs, cur)
			cur = model.Sig{Swing: model.DefaultSwing}
			seen = false
		}
	}
	forEachPair(data, func(key, val string) {
		switch key {
		case "":
			flush()
		case "key":
			n, err := strconv.Atoi(val)
			if err != nil {
				parseErr = err
				return
			}
			cur.Key = uint8(n)
			seen = true
		case "time":
			beats, unit, ok := strings.Cut(val, "/")
			if !ok {
				parseErr = fmt.Errorf("bad time signature %q", val)
				return
			}
			b, err1 := strconv.Atoi(beats)
			u, err2 := strconv.Atoi(unit)
			if err1 != nil || err2 != nil {
				parseErr = fmt.Errorf("bad time signature %q", val)
				return
			}
			cur.Time = model.TimeSig{Beats: uint16(b), Unit: uint16(u)}
			seen = true
		case "tempo":
			n, err := strconv.Atoi(val)
			if err != nil {
				parseErr = err
				return
			}
			cur.Tempo = uint16(n)
			seen = true
		case "swing":
			n, err := strconv.Atoi(val)
			if err != nil {
				parseErr = err
				return
			}
			cur.Swing = uint8(n)
			seen = true
		}
	})
	flush()
	return sigs, parseErr
}

func parseBar(data []byte) (score.BarSource, error) {
	var bar score.BarSource
	var parseErr error
	forEachPair(data, func(key, val string) {
		switch key {
		case "sig":
			n, err := strconv.Atoi(val)
			if err != nil {
				parseErr = err
				return
			}
			bar.Sig = &n
		case "repeat":
			bar.Repeat = append(bar.Repeat, val)
		case "chan":
			bar.Chans = append(bar.Chans, score.ChanSource{Notes: val})
		case "lyric":
			if len(bar.Chans) == 0 {
				parseErr = fmt.Errorf("lyric before any chan")
				return
			}
			bar.Chans[len(bar.Chans)-1].Lyric = val
		}
	})
	return bar, parseErr
}

// ReadFile loads a .scof from disk.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Load(f, info.Size())
}

// WriteFile saves a .scof to disk.
func WriteFile(path string, f *File) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(out, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
