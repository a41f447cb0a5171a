package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphbridge/core"
	"github.com/npillmayer/glyphbridge/core/font"
	"github.com/npillmayer/glyphbridge/core/font/fontregistry"
	"github.com/npillmayer/glyphbridge/core/locate/resources"
	"github.com/npillmayer/glyphbridge/core/parameters"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

// loadTimeout limits the time we wait for a font to be resolved and loaded.
const loadTimeout = 10 * time.Second

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	registry *fontregistry.Registry
	params   *parameters.Parameters
	ledger   *font.CountingLedger
	current  string  // registry key of the font in use
	px       float32 // pixel height for glyphs
}

// NewIntp creates an interpreter working on a font registry.
func NewIntp(params *parameters.Parameters, registry *fontregistry.Registry, ledger *font.CountingLedger) *Intp {
	return &Intp{
		registry: registry,
		params:   params,
		ledger:   ledger,
		px:       24,
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	intp.repl.Close()
	pterm.Info.Println("Good bye!")
}

// --- Commands --------------------------------------------------------------

const (
	QUIT int = iota
	HELP
	LOAD
	FONTS
	USE
	SIZE
	GLYPH
	KERN
	PAIRS
	LEDGER
	UNLOAD
)

var commands = map[string]int{
	"quit":   QUIT,
	"exit":   QUIT,
	"help":   HELP,
	"load":   LOAD,
	"fonts":  FONTS,
	"use":    USE,
	"size":   SIZE,
	"glyph":  GLYPH,
	"kern":   KERN,
	"pairs":  PAIRS,
	"ledger": LEDGER,
	"unload": UNLOAD,
}

// argument count per command: minimum, maximum (-1 = rest of line)
var arity = map[int][2]int{
	QUIT:   {0, 0},
	HELP:   {0, 1},
	LOAD:   {1, 1},
	FONTS:  {0, 0},
	USE:    {1, 1},
	SIZE:   {1, 1},
	GLYPH:  {1, 2},
	KERN:   {2, 2},
	PAIRS:  {1, -1},
	LEDGER: {0, 0},
	UNLOAD: {1, 1},
}

// Command is a parsed input line.
type Command struct {
	code int
	args []string
}

func parseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("empty command")
	}
	code, ok := commands[strings.ToLower(fields[0])]
	if !ok {
		return nil, fmt.Errorf("unknown command '%s', try 'help'", fields[0])
	}
	cmd := &Command{code: code}
	a := arity[code]
	if a[1] < 0 { // rest of line is a single argument
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		if rest != "" {
			cmd.args = []string{rest}
		}
	} else {
		cmd.args = fields[1:]
	}
	if len(cmd.args) < a[0] || (a[1] >= 0 && len(cmd.args) > a[1]) {
		return nil, fmt.Errorf("wrong number of arguments for '%s', try 'help'", fields[0])
	}
	tracer().Debugf("parsed command %d with args %v", cmd.code, cmd.args)
	return cmd, nil
}

func (intp *Intp) execute(cmd *Command) (error, bool) {
	switch cmd.code {
	case QUIT:
		return nil, true
	case HELP:
		help(getOptArg(cmd.args, 0))
	case LOAD:
		return intp.loadFont(cmd.args[0]), false
	case FONTS:
		return intp.listFonts(), false
	case USE:
		if !intp.registry.Contains(cmd.args[0]) {
			return fmt.Errorf("no font '%s' loaded", cmd.args[0]), false
		}
		intp.current = cmd.args[0]
		pterm.Info.Printfln("using font %s", intp.current)
	case SIZE:
		px, err := strconv.ParseFloat(cmd.args[0], 32)
		if err != nil || px <= 0 || px > 1000 {
			return fmt.Errorf("invalid pixel height: %s", cmd.args[0]), false
		}
		intp.px = float32(px)
	case GLYPH:
		r, err := parseCodepoint(cmd.args[0])
		if err != nil {
			return err, false
		}
		px := intp.px
		if s := getOptArg(cmd.args, 1); s != "" {
			p, err := strconv.ParseFloat(s, 32)
			if err != nil || p <= 0 {
				return fmt.Errorf("invalid pixel height: %s", s), false
			}
			px = float32(p)
		}
		return intp.showGlyph(r, px), false
	case KERN:
		r1, err1 := parseCodepoint(cmd.args[0])
		r2, err2 := parseCodepoint(cmd.args[1])
		if err := errors.Join(err1, err2); err != nil {
			return err, false
		}
		f, err := intp.font()
		if err != nil {
			return err, false
		}
		pterm.Printfln("kern(%s, %s) = %d units, %.2f px at %.1f px",
			describe(r1), describe(r2), font.Kerning(f, r1, r2), font.KerningAt(f, r1, r2, intp.px), intp.px)
	case PAIRS:
		return intp.showPairs(cmd.args[0]), false
	case LEDGER:
		intp.showLedger()
	case UNLOAD:
		if !intp.registry.Remove(cmd.args[0]) {
			return fmt.Errorf("no font '%s' loaded", cmd.args[0]), false
		}
		if intp.current == cmd.args[0] {
			intp.current = ""
		}
		pterm.Info.Printfln("unloaded font %s", cmd.args[0])
	}
	return nil, false
}

// --- Fonts -----------------------------------------------------------------

func (intp *Intp) loadFont(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	promise := resources.ResolveFont(name, intp.params, font.WithLedger(intp.ledger))
	f, err := promise.Await(ctx)
	if err != nil {
		return err
	}
	key := fontregistry.NormalizedKey(name)
	if !intp.registry.StoreFont(key, f) {
		f.Release()
		return fmt.Errorf("font '%s' is already loaded", key)
	}
	intp.current = key
	pterm.Info.Printfln("loaded %s as '%s' (%s, %d bytes, %d glyphs)",
		f.FullName(), key, f.Format(), f.Len(), f.NumGlyphs())
	return nil
}

// font returns the font in use.
func (intp *Intp) font() (*font.Font, error) {
	if intp.current == "" {
		return nil, errors.New("no font in use, try 'load'")
	}
	return intp.registry.Font(intp.current)
}

func (intp *Intp) listFonts() error {
	names := intp.registry.Names()
	if len(names) == 0 {
		pterm.Info.Println("no fonts loaded")
		return nil
	}
	data := pterm.TableData{{"", "Key", "Name", "Format", "Bytes", "Glyphs"}}
	for _, key := range names {
		f, err := intp.registry.Font(key)
		if err != nil {
			continue
		}
		mark := ""
		if key == intp.current {
			mark = "*"
		}
		data = append(data, []string{mark, key, f.FullName(), f.Format(),
			strconv.Itoa(f.Len()), strconv.Itoa(f.NumGlyphs())})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// completer offers command names and, for commands taking a font, the keys
// of loaded fonts.
func (intp *Intp) completer() *readline.PrefixCompleter {
	fontKeys := func(line string) []string {
		fields := strings.Fields(line)
		if len(fields) < 2 || strings.HasSuffix(line, " ") {
			return intp.registry.Complete("")
		}
		return intp.registry.Complete(fields[len(fields)-1])
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("load"),
		readline.PcItem("fonts"),
		readline.PcItem("use", readline.PcItemDynamic(fontKeys)),
		readline.PcItem("unload", readline.PcItemDynamic(fontKeys)),
		readline.PcItem("size"),
		readline.PcItem("glyph"),
		readline.PcItem("kern"),
		readline.PcItem("pairs"),
		readline.PcItem("ledger"),
		readline.PcItem("help",
			readline.PcItem("glyph"),
			readline.PcItem("kern"),
			readline.PcItem("pairs"),
			readline.PcItem("load"),
		),
		readline.PcItem("quit"),
	)
}

func (intp *Intp) showLedger() {
	data := pterm.TableData{{"Resource", "Live", "Bytes", "Acquired"}}
	for _, r := range []font.Resource{font.FontBuffer, font.ParserState, font.GlyphBuffer} {
		data = append(data, []string{r.String(), strconv.Itoa(intp.ledger.Live(r)),
			strconv.Itoa(intp.ledger.Bytes(r)), strconv.Itoa(intp.ledger.Acquired(r))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// --- Arguments -------------------------------------------------------------

// parseCodepoint accepts a single character, or a code-point in notation
// U+XXXX or 0xXXXX.
func parseCodepoint(arg string) (rune, error) {
	if utf8.RuneCountInString(arg) == 1 {
		r, _ := utf8.DecodeRuneInString(arg)
		return r, nil
	}
	lower := strings.ToLower(arg)
	for _, prefix := range []string{"u+", "0x"} {
		if strings.HasPrefix(lower, prefix) {
			n, err := strconv.ParseUint(lower[len(prefix):], 16, 32)
			if err != nil || n > utf8.MaxRune {
				break
			}
			return rune(n), nil
		}
	}
	return 0, fmt.Errorf("not a code-point: '%s'", arg)
}

// describe formats a code-point with its Unicode name.
func describe(r rune) string {
	name := runenames.Name(r)
	if name == "" {
		return fmt.Sprintf("%U", r)
	}
	return fmt.Sprintf("%U %s", r, name)
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "glyph":
		pterm.Info.Println("glyph <char> [px]")
		pterm.Println(`
	Rasterizes a single glyph of the font in use and prints its coverage
	bitmap. <char> is a character or a code-point like U+00C4 or 0xC4.
	px is the height from ascender to descender in pixels; default is the
	value set with 'size'.
	`)
	case "kern":
		pterm.Info.Println("kern <char> <char>")
		pterm.Println(`
	Prints the kerning between two characters, in font design units and
	in pixels at the current size.
	`)
	case "pairs":
		pterm.Info.Println("pairs <text>")
		pterm.Println(`
	Splits <text> into grapheme clusters and prints the kerning between
	the base characters of neighbouring clusters.
	`)
	case "load":
		pterm.Info.Println("load <name>")
		pterm.Println(`
	Loads a font file. <name> may be a path, a file name or a file name
	without extension. Names are searched for in the fonts directory,
	then among the system fonts. The font is registered under a
	normalized key and becomes the font in use.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	load <name>         load a font and use it
	fonts               list loaded fonts
	use <key>           use a loaded font
	unload <key>        release a loaded font
	size <px>           set pixel height for glyphs
	glyph <char> [px]   rasterize a glyph
	kern <char> <char>  show kerning of a pair
	pairs <text>        show kerning of all pairs in a text
	ledger              show buffers currently held
	help [command]      show help
	quit                leave
	`)
	}
}
