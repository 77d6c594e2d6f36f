package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beehive-drones/admin/internal/client/crud"
	"github.com/beehive-drones/admin/internal/client/models"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// clearValue typed at a prompt empties an optional field.
const clearValue = "-"

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && len(lines) == 0 {
				return "", err
			}
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// prompter fills drafts field by field. Every prompt shows the current value;
// an empty answer keeps it.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func newPrompter(r *bufio.Reader, w io.Writer) *prompter {
	return &prompter{r: r, w: w}
}

func withCurrent(label, cur string) string {
	if cur == "" {
		return label
	}
	if len(cur) > 60 {
		cur = cur[:57] + "..."
	}
	return fmt.Sprintf("%s [%s]", label, strings.ReplaceAll(cur, "\n", " "))
}

// text asks for a single line. "-" clears the value.
func (p *prompter) text(label string, cur *string) error {
	s, err := GetSimpleText(p.r, withCurrent(label, *cur), p.w)
	if err != nil {
		return err
	}
	switch s {
	case "":
	case clearValue:
		*cur = ""
	default:
		*cur = s
	}
	return nil
}

// multiline asks for free text ended by an empty line. An immediately empty
// answer keeps the value, a lone "-" clears it.
func (p *prompter) multiline(label string, cur *string) error {
	s, err := GetMultiline(p.r, withCurrent(label, *cur), p.w)
	if err != nil {
		return err
	}
	switch s {
	case "":
	case clearValue:
		*cur = ""
	default:
		*cur = s
	}
	return nil
}

// number asks until the answer parses as a float.
func (p *prompter) number(label string, cur *float64) error {
	for {
		s, err := GetSimpleText(p.r, withCurrent(label, strconv.FormatFloat(*cur, 'f', -1, 64)), p.w)
		if err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			*cur = v
			return nil
		}
		fmt.Fprintf(p.w, "%q is not a number\n", s)
	}
}

// choice asks until the answer is one of allowed, ignoring case.
func (p *prompter) choice(label string, allowed []string, cur *string) error {
	prompt := fmt.Sprintf("%s (%s)", label, strings.Join(allowed, "/"))
	for {
		s, err := GetSimpleText(p.r, withCurrent(prompt, *cur), p.w)
		if err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		for _, a := range allowed {
			if strings.EqualFold(a, s) {
				*cur = a
				return nil
			}
		}
		fmt.Fprintf(p.w, "choose one of %s\n", strings.Join(allowed, ", "))
	}
}

// list asks for a comma separated list. "-" clears it.
func (p *prompter) list(label string, cur *[]string) error {
	s := strings.Join(*cur, ", ")
	if err := p.text(label+" (comma separated)", &s); err != nil {
		return err
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*cur = out
	return nil
}

// pick lets the operator choose relations of kind by name or id. The
// selection applies its own policy to every pick.
func (p *prompter) pick(opts *crud.Options, kind string, sel *crud.Selection) error {
	if !opts.Ready(kind) {
		fmt.Fprintf(p.w, "%s options are not loaded, keeping current choice\n", plural(*sel))
		return nil
	}
	available, err := opts.List(kind)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(available))
	for _, o := range available {
		names = append(names, fmt.Sprintf("%d=%s", o.ID, o.Name))
	}
	fmt.Fprintf(p.w, "Available %s: %s\n", plural(*sel), strings.Join(names, ", "))

	current := make([]string, 0, sel.Len())
	for _, id := range sel.IDs() {
		if n, ok := opts.Name(kind, id); ok {
			current = append(current, n)
		}
	}

	for {
		s, err := GetSimpleText(p.r, withCurrent(fmt.Sprintf("Pick %s (names or ids, comma separated)", plural(*sel)), strings.Join(current, ", ")), p.w)
		if err != nil {
			return err
		}
		if s == "" {
			return nil
		}

		next := *sel
		next.Clear()
		if s != clearValue {
			if err := p.addPicks(opts, kind, &next, s); err != nil {
				fmt.Fprintln(p.w, err)
				continue
			}
		}
		*sel = next
		return nil
	}
}

func (p *prompter) addPicks(opts *crud.Options, kind string, sel *crud.Selection, answer string) error {
	for _, tok := range strings.Split(answer, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			if id, err = opts.ID(kind, tok); err != nil {
				return err
			}
		} else if _, ok := opts.Name(kind, id); !ok {
			return fmt.Errorf("unknown %s %d", sel.Label, id)
		}
		if err := sel.Add(id); err != nil {
			fmt.Fprintf(p.w, "%s: %v\n", tok, err)
		}
	}
	return nil
}

// image asks for a local file to upload in place of a.
func (p *prompter) image(label string, a *crud.Attachment) error {
	cur := a.Ref
	if a.IsPending() {
		cur = a.Path
	}
	s, err := GetSimpleText(p.r, withCurrent(label+" (path to a local file)", cur), p.w)
	if err != nil {
		return err
	}
	if s != "" {
		*a = a.Replace(s)
	}
	return nil
}

// gallery edits a bounded list of images: "+path" adds, "-N" removes the
// N-th entry if it was added in this session, an empty line finishes.
func (p *prompter) gallery(label string, g *crud.Attachments) error {
	for {
		for i, it := range g.Items() {
			ref := it.Ref
			if it.IsPending() {
				ref = it.Path + " (new)"
			}
			fmt.Fprintf(p.w, "  %d. %s\n", i+1, ref)
		}
		s, err := GetSimpleText(p.r, fmt.Sprintf("%s %d/%d: +path to add, -N to remove a new image, Enter to finish", label, g.Len(), g.Max), p.w)
		if err != nil {
			return err
		}
		switch {
		case s == "":
			return nil
		case strings.HasPrefix(s, "+"):
			if err := g.Add(strings.TrimSpace(s[1:])); err != nil {
				fmt.Fprintln(p.w, err)
			}
		case strings.HasPrefix(s, "-"):
			n, err := strconv.Atoi(s[1:])
			if err != nil {
				fmt.Fprintf(p.w, "cannot remove %q\n", s[1:])
				continue
			}
			if err := g.Remove(n - 1); err != nil {
				fmt.Fprintf(p.w, "cannot remove %q: %v\n", s[1:], err)
			}
		default:
			fmt.Fprintln(p.w, "start with + or -")
		}
	}
}

// packages replaces the package options with lines of the form
// "name | price | description". An empty answer keeps the current options.
func (p *prompter) packages(cur *[]models.PackageOption) error {
	for _, o := range *cur {
		fmt.Fprintf(p.w, "  %s | %v | %s\n", o.Name, o.Price, o.Description)
	}
	for {
		text, err := GetMultiline(p.r, "Package options (name | price | description, - to clear)", p.w)
		if err != nil {
			return err
		}
		switch text {
		case "":
			return nil
		case clearValue:
			*cur = nil
			return nil
		}
		opts, err := parsePackages(text)
		if err != nil {
			fmt.Fprintln(p.w, err)
			continue
		}
		*cur = opts
		return nil
	}
}

func parsePackages(text string) ([]models.PackageOption, error) {
	var out []models.PackageOption
	for _, line := range strings.Split(text, "\n") {
		parts := strings.SplitN(line, "|", 3)
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		o := models.PackageOption{Name: name}
		if len(parts) > 1 {
			if s := strings.TrimSpace(parts[1]); s != "" {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, fmt.Errorf("package %q: %q is not a price", name, s)
				}
				o.Price = v
			}
		}
		if len(parts) > 2 {
			o.Description = strings.TrimSpace(parts[2])
		}
		out = append(out, o)
	}
	return out, nil
}

// confirm asks a yes/no question; anything but y/yes is no.
func (p *prompter) confirm(question string) (bool, error) {
	s, err := GetSimpleText(p.r, question+" [y/N]", p.w)
	if err != nil {
		return false, err
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes", nil
}

func plural(s crud.Selection) string {
	if s.Plural != "" {
		return s.Plural
	}
	return s.Label + "s"
}
