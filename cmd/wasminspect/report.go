package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/Valkyrja-Design/smol-wasm/errors"
	"github.com/Valkyrja-Design/smol-wasm/wasm"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// report is the serializable view of a decoded module.
type report struct {
	File      string         `json:"file" yaml:"file"`
	Magic     string         `json:"magic" yaml:"magic"`
	Sections  []sectionEntry `json:"sections" yaml:"sections"`
	Types     []typeEntry    `json:"types" yaml:"types"`
	Functions []funcEntry    `json:"functions" yaml:"functions"`
	Version   uint32         `json:"version" yaml:"version"`
}

type sectionEntry struct {
	Name  string `json:"name" yaml:"name"`
	Code  uint8  `json:"code" yaml:"code"`
	Size  uint32 `json:"size" yaml:"size"`
	Count int    `json:"count" yaml:"count"`
}

type typeEntry struct {
	Signature string   `json:"signature" yaml:"signature"`
	Params    []string `json:"params" yaml:"params"`
	Results   []string `json:"results" yaml:"results"`
	Index     int      `json:"index" yaml:"index"`
}

type funcEntry struct {
	Signature string `json:"signature,omitempty" yaml:"signature,omitempty"`
	Index     int    `json:"index" yaml:"index"`
	TypeIndex uint32 `json:"type_index" yaml:"type_index"`
}

func newReport(file string, m *wasm.Module) report {
	r := report{
		File:      file,
		Magic:     m.Magic,
		Version:   m.Version,
		Sections:  []sectionEntry{},
		Types:     []typeEntry{},
		Functions: []funcEntry{},
	}

	if ts := m.TypeSection; ts != nil {
		r.Sections = append(r.Sections, sectionEntry{
			Name:  ts.Code.String(),
			Code:  uint8(ts.Code),
			Size:  ts.Size,
			Count: len(ts.FuncTypes),
		})
	}
	if fs := m.FuncSection; fs != nil {
		r.Sections = append(r.Sections, sectionEntry{
			Name:  fs.Code.String(),
			Code:  uint8(fs.Code),
			Size:  fs.Size,
			Count: len(fs.TypeIndices),
		})
	}

	for i, ft := range m.FuncTypes() {
		r.Types = append(r.Types, typeEntry{
			Index:     i,
			Params:    typeNames(ft.Params),
			Results:   typeNames(ft.Results),
			Signature: ft.String(),
		})
	}

	for i, typeIdx := range m.TypeIndices() {
		fe := funcEntry{Index: i, TypeIndex: typeIdx}
		if sig, err := m.FuncSignature(i); err == nil {
			fe.Signature = sig.String()
		}
		r.Functions = append(r.Functions, fe)
	}
	return r
}

func typeNames(vts []wasm.ValueType) []string {
	names := make([]string, len(vts))
	for i, vt := range vts {
		names[i] = vt.String()
	}
	return names
}

func render(w io.Writer, r report, format string, color bool) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case formatText, "":
		_, err := io.WriteString(w, renderText(r, newPalette(w, color)))
		return err
	default:
		return errors.InvalidInput(errors.PhaseConfig, "unknown format "+format)
	}
}

// palette holds the output styles, adapted from the browse view.
type palette struct {
	title   lipgloss.Style
	heading lipgloss.Style
	index   lipgloss.Style
	sig     lipgloss.Style
	invalid lipgloss.Style
	help    lipgloss.Style
}

func newPalette(w io.Writer, color bool) palette {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
		plain := r.NewStyle()
		return palette{plain, plain, plain, plain, plain, plain}
	}
	r.SetColorProfile(termenv.TrueColor)
	return palette{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		heading: r.NewStyle().Bold(true),
		index:   r.NewStyle().Foreground(lipgloss.Color("#666666")),
		sig:     r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		invalid: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		help:    r.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func renderText(r report, p palette) string {
	var b strings.Builder

	b.WriteString(p.title.Render(r.File))
	fmt.Fprintf(&b, " magic %q version %d\n", r.Magic, r.Version)

	b.WriteString("\n")
	b.WriteString(p.heading.Render("sections"))
	b.WriteString("\n")
	if len(r.Sections) == 0 {
		b.WriteString(p.help.Render("  none decoded"))
		b.WriteString("\n")
	}
	for _, s := range r.Sections {
		fmt.Fprintf(&b, "  %-9s size %-6d count %d\n", s.Name, s.Size, s.Count)
	}

	if len(r.Types) > 0 {
		b.WriteString("\n")
		b.WriteString(p.heading.Render("types"))
		b.WriteString("\n")
		for _, t := range r.Types {
			b.WriteString("  ")
			b.WriteString(p.index.Render(padIndex(t.Index, len(r.Types))))
			b.WriteString("  ")
			b.WriteString(p.sig.Render(t.Signature))
			b.WriteString("\n")
		}
	}

	if len(r.Functions) > 0 {
		b.WriteString("\n")
		b.WriteString(p.heading.Render("functions"))
		b.WriteString("\n")
		for _, f := range r.Functions {
			b.WriteString("  ")
			b.WriteString(p.index.Render(padIndex(f.Index, len(r.Functions))))
			fmt.Fprintf(&b, "  type %d  ", f.TypeIndex)
			if f.Signature == "" {
				b.WriteString(p.invalid.Render("<invalid type index>"))
			} else {
				b.WriteString(p.sig.Render(f.Signature))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func padIndex(i, n int) string {
	width := len(strconv.Itoa(n - 1))
	s := strconv.Itoa(i)
	return strings.Repeat(" ", width-len(s)) + s
}
