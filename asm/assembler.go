package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/tersim/machine"
	"github.com/ezrec/tersim/tryte"
)

// JUMP_RANGE is the largest jump offset a single jump word encodes.
const JUMP_RANGE = 13*27 + 13

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"TRYTE_MIN": fmt.Sprintf("%d", tryte.MIN),
	"TRYTE_MAX": fmt.Sprintf("%d", tryte.MAX),
	"ORIGIN":    fmt.Sprintf("%d", ORIGIN_DEFAULT.Int()),
}

// Assembler is a single pass macro assembler for the tersim machine.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of assembled lines.

	predefine map[string]string      // Predefines
	Label     map[string]tryte.Tryte // Map of labels to addresses.
	Equate    map[string]string      // Map of equates.
	Macro     map[string](*Macro)    // Map of macros.

	location tryte.Tryte // Address of the next assembled word.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// aliasMap maps register aliases to their symbols.
var aliasMap = map[string]byte{
	"pc": tryte.Symbol(machine.REG_PC.Int()),
	"sp": tryte.Symbol(machine.REG_SP.Int()),
	"zr": tryte.Symbol(machine.REG_ZERO.Int()),
}

// registerOf returns the symbol of a register name.
func registerOf(word string) (symbol byte, ok bool) {
	symbol, ok = aliasMap[strings.ToLower(word)]
	if ok {
		return
	}

	if len(word) != 1 {
		return
	}

	symbol = strings.ToUpper(word)[0]
	if symbol < 'A' || symbol > 'Z' || symbol == machine.SYM_INDIRECT {
		return 0, false
	}

	ok = true
	return
}

// isRawWord returns true if the word is three uppercase tribble symbols.
func isRawWord(word string) bool {
	if len(word) != tryte.TRIBBLES {
		return false
	}
	for n := range len(word) {
		c := word[n]
		if c != '_' && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

// valueOf returns the value of a simple word. Unknown identifiers are
// returned as a link to be resolved once all labels are known.
func (asm *Assembler) valueOf(word string) (value tryte.Tryte, link string, err error) {
	seen := map[string]bool{}
	for {
		if len(word) == 0 {
			err = ErrParseNumber(word)
			return
		}

		if isRawWord(word) {
			value, err = tryte.FromTribbles(word)
			return
		}

		v64, perr := strconv.ParseInt(word, 0, 64)
		if perr == nil {
			if v64 < tryte.MIN || v64 > tryte.MAX {
				err = ErrParseNumber(word)
				return
			}
			value = tryte.New(int(v64))
			return
		}

		equate, ok := asm.Equate[word]
		if !ok || equate == word {
			break
		}
		if seen[word] {
			err = ErrEquateLoop
			return
		}
		seen[word] = true
		word = equate
	}

	if addr, ok := asm.Label[word]; ok {
		value = addr
		return
	}

	if identifierRe.MatchString(word) {
		link = word
		return
	}

	err = ErrParseNumber(word)
	return
}

// operand is an encoded instruction operand.
type operand struct {
	symbol byte        // Operand symbol in the instruction word.
	ext    tryte.Tryte // Extension word, when symbol is '_' or 'M' as a value.
	hasExt bool        // Set if ext is emitted.
	link   string      // Label to link into ext.
}

// operandOf encodes a single operand in either the target or source role.
func (asm *Assembler) operandOf(word string, asValue bool) (out operand, err error) {
	if word == string(machine.SYM_DISCARD) {
		if asValue {
			err = ErrOperandInvalid
			return
		}
		out.symbol = machine.SYM_DISCARD
		return
	}

	if symbol, ok := registerOf(word); ok {
		out.symbol = symbol
		return
	}

	switch {
	case strings.HasPrefix(word, "[") && strings.HasSuffix(word, "]"):
		out.symbol = machine.SYM_INDIRECT
		word = word[1 : len(word)-1]
	case strings.HasPrefix(word, "#"):
		if !asValue {
			err = ErrTargetInvalid
			return
		}
		out.symbol = machine.SYM_DISCARD
		word = word[1:]
	case asValue:
		out.symbol = machine.SYM_DISCARD
	default:
		err = ErrTargetInvalid
		return
	}

	out.hasExt = true
	out.ext, out.link, err = asm.valueOf(word)
	return
}

// smallOf returns the symbol of a small constant.
func (asm *Assembler) smallOf(word string) (symbol byte, err error) {
	value, link, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if len(link) != 0 {
		err = ErrLabelMissing(link)
		return
	}
	if value.Int() < -13 || value.Int() > 13 {
		err = ErrSmallRange
		return
	}
	symbol = tryte.Symbol(value.Int())
	return
}

// makeWord builds an instruction word from its opcode and operand symbols.
func makeWord(op machine.Opcode, high, low byte) tryte.Tryte {
	word, err := tryte.FromTribbles(string([]byte{op.Symbol(), high, low}))
	if err != nil {
		panic(err)
	}
	return word
}

// jumpWord builds a jump word for a relative offset.
func jumpWord(offset int) (word tryte.Tryte, err error) {
	if offset < -JUMP_RANGE || offset > JUMP_RANGE {
		err = ErrJumpRange
		return
	}

	high := offset / 27
	low := offset - high*27
	switch {
	case low > 13:
		high++
		low -= 27
	case low < -13:
		high--
		low += 27
	}

	word = makeWord(machine.OP_JUMP, tryte.Symbol(high), tryte.Symbol(low))
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value tryte.Tryte, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, addr := range asm.Label {
		if identifierRe.MatchString(key) && !strings.Contains(key, ".") {
			pred[key] = starlark.MakeInt(addr.Int())
		}
	}
	for key, str := range asm.Equate {
		var equ tryte.Tryte
		var link string
		equ, link, err = asm.valueOf(str)
		if err != nil || len(link) != 0 {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(equ.Int())
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = tryte.New(int(st_int64))
	return
}

// parseLine parses a single line into words, handling equates, labels and macros.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value.Int())
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]tryte.Tryte, 16)
		}
		asm.Label[label] = asm.location
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// '@' makes labels local to this expansion.
		local := fmt.Sprintf("%v_%v_", name, lineno)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Lines = asm.Lines[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	// ORIGIN may be predefined to move the default origin.
	var link string
	asm.location, link, err = asm.valueOf(asm.Equate["ORIGIN"])
	if err == nil && len(link) != 0 {
		err = ErrOrgSyntax
	}
	if err != nil {
		return
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Lines {
		ln := &asm.Lines[n]
		for _, link := range ln.Links {
			addr, ok := asm.Label[link.Label]
			if !ok {
				lineno = ln.LineNo
				line = strings.Join(ln.Words, " ")
				err = ErrLabelMissing(link.Label)
				return
			}
			if !link.Relative {
				ln.Codes[link.Index] = addr
				continue
			}
			next := ln.Address.Add(tryte.New(link.Index + 1))
			ln.Codes[link.Index], err = jumpWord(addr.Sub(next).Int())
			if err != nil {
				lineno = ln.LineNo
				line = strings.Join(ln.Words, " ")
				return
			}
		}
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// mnemonicMap maps mnemonics to opcodes.
var mnemonicMap = func() map[string]machine.Opcode {
	ops := machine.Opcodes()
	m := make(map[string]machine.Opcode, len(ops))
	for _, op := range ops {
		m[op.String()] = op
	}
	return m
}()

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []tryte.Tryte
	var links []Link

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := slices.Clone(words)

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		line := Line{LineNo: lineno, Address: asm.location, Words: initial_words, Codes: codes, Links: links}
		asm.Lines = append(asm.Lines, line)
		asm.location = asm.location.Add(tryte.New(len(codes)))
	}()

	// emit appends an operand's extension word, if any.
	emit := func(out operand) {
		if !out.hasExt {
			return
		}
		if len(out.link) != 0 {
			links = append(links, Link{Index: len(codes), Label: out.link})
		}
		codes = append(codes, out.ext)
	}

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var link string
		var addr tryte.Tryte
		addr, link, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if len(link) != 0 {
			err = ErrOrgSyntax
			return
		}
		asm.location = addr
		return
	case ".word":
		if len(words) < 2 {
			err = ErrOpcodeMissing
			return
		}
		for _, word := range words[1:] {
			var value tryte.Tryte
			var link string
			value, link, err = asm.valueOf(word)
			if err != nil {
				return
			}
			emit(operand{ext: value, hasExt: true, link: link})
		}
		return
	case ".data":
		text := strings.ToUpper(strings.Join(words[1:], ""))
		if len(text) == 0 || len(text)%tryte.TRIBBLES != 0 {
			err = ErrDataSyntax
			return
		}
		for n := 0; n < len(text); n += tryte.TRIBBLES {
			var value tryte.Tryte
			value, err = tryte.FromTribbles(text[n : n+tryte.TRIBBLES])
			if err != nil {
				err = fmt.Errorf("%w: %w", ErrDataSyntax, err)
				codes = nil
				return
			}
			codes = append(codes, value)
		}
		return
	}

	// Raw tribble words.
	if isRawWord(words[0]) {
		for _, word := range words {
			if !isRawWord(word) {
				codes = nil
				err = ErrInstructionInvalid
				return
			}
			var value tryte.Tryte
			value, err = tryte.FromTribbles(word)
			if err != nil {
				codes = nil
				return
			}
			codes = append(codes, value)
		}
		return
	}

	// Alternate syntax substitutions
	switch {
	case len(words) == 1 && words[0] == "return":
		// return => pop sp pc
		words = []string{"pop", "sp", "pc"}
	case len(words) == 1 && words[0] == "nop":
		// nop => jump 0
		words = []string{"jump", "0"}
	case len(words) == 2 && (words[0] == "push" || words[0] == "pop" || words[0] == "call"):
		// push VALUE => push sp VALUE
		words = []string{words[0], "sp", words[1]}
	case len(words) == 2 && words[0] == "goto":
		// goto VALUE => move pc #VALUE
		words = []string{"move", "pc", "#" + words[1]}
	default:
		// unchanged
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}
	args := words[1:]

	// want checks the argument count.
	want := func(least, most int) bool {
		if len(args) < least {
			err = ErrOpcodeMissing
			return false
		}
		if len(args) > most {
			err = ErrOpcodeExtraArgs
			return false
		}
		return true
	}

	switch op {
	case machine.OP_JUMP:
		if !want(1, 1) {
			return
		}
		var word tryte.Tryte
		offset, perr := strconv.ParseInt(args[0], 0, 64)
		if perr == nil {
			word, err = jumpWord(int(offset))
			if err != nil {
				return
			}
			codes = append(codes, word)
			return
		}
		var addr tryte.Tryte
		var link string
		addr, link, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if len(link) != 0 {
			links = append(links, Link{Index: 0, Label: link, Relative: true})
			codes = append(codes, makeWord(op, machine.SYM_DISCARD, machine.SYM_DISCARD))
			return
		}
		word, err = jumpWord(addr.Sub(asm.location.Add(tryte.New(1))).Int())
		if err != nil {
			return
		}
		codes = append(codes, word)
	case machine.OP_LOAD, machine.OP_INC:
		if !want(2, 2) {
			return
		}
		var dst operand
		dst, err = asm.operandOf(args[0], false)
		if err != nil {
			return
		}
		var small byte
		small, err = asm.smallOf(args[1])
		if err != nil {
			return
		}
		codes = append(codes, makeWord(op, dst.symbol, small))
		emit(dst)
	case machine.OP_HARDWARE:
		if !want(0, 2) {
			return
		}
		symbols := []byte{machine.SYM_DISCARD, machine.SYM_DISCARD}
		for n, arg := range args {
			if len(arg) != 1 || !tryte.IsSymbol(strings.ToUpper(arg)[0]) {
				err = ErrOperandInvalid
				return
			}
			symbols[n] = strings.ToUpper(arg)[0]
		}
		codes = append(codes, makeWord(op, symbols[0], symbols[1]))
	case machine.OP_ZERO:
		if !want(1, 1) {
			return
		}
		var dst operand
		dst, err = asm.operandOf(args[0], false)
		if err != nil {
			return
		}
		codes = append(codes, makeWord(op, dst.symbol, machine.SYM_DISCARD))
		emit(dst)
	case machine.OP_LOGIC:
		if !want(3, 3) {
			return
		}
		var dst, src operand
		dst, err = asm.operandOf(args[0], false)
		if err != nil {
			return
		}
		src, err = asm.operandOf(args[1], true)
		if err != nil {
			return
		}
		var table tryte.Tryte
		var link string
		table, link, err = asm.valueOf(args[2])
		if err != nil {
			return
		}
		codes = append(codes, makeWord(op, dst.symbol, src.symbol))
		emit(dst)
		emit(src)
		emit(operand{ext: table, hasExt: true, link: link})
	default:
		if !want(2, 2) {
			return
		}
		// Targets are references, except for write and the conditionals.
		asValue := op == machine.OP_WRITE || op.Class() == machine.CLASS_SKIP
		var high, low operand
		high, err = asm.operandOf(args[0], asValue)
		if err != nil {
			return
		}
		low, err = asm.operandOf(args[1], op != machine.OP_POP)
		if err != nil {
			return
		}
		codes = append(codes, makeWord(op, high.symbol, low.symbol))
		emit(high)
		emit(low)
	}

	return
}
