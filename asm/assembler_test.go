package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/tersim/tryte"
)

func assemble(t *testing.T, program ...string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(strings.Join(program, "\n")))
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))
	assert.Equal(ORIGIN_DEFAULT, prog.Origin())
	assert.Equal(ORIGIN_DEFAULT, prog.End())
	assert.Equal(0, prog.Len())
	assert.Equal("", prog.Text())

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("-9841", asm.Equate["TRYTE_MIN"])
	assert.Equal("9841", asm.Equate["TRYTE_MAX"])
	assert.Equal("-364", asm.Equate["ORIGIN"])
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("COUNT", "7")
	asm.Predefine("COUNT", "8")

	prog, err := asm.Parse(strings.NewReader("load a COUNT"))
	assert.NoError(err)
	assert.Equal("VAU", prog.Text())

	asm.Predefine("ORIGIN", "_BA")
	prog, err = asm.Parse(strings.NewReader("load a COUNT"))
	assert.NoError(err)
	assert.Equal(tryte.Tryte(-337), prog.Origin())
	assert.Equal("VAU", prog.Text())

	asm.Predefine("ORIGIN", "nowhere")
	_, err = asm.Parse(strings.NewReader("nop"))
	assert.ErrorIs(err, ErrOrgSyntax)
}

func TestAssemblerEncoding(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		text   string
	}){
		{"move a b", "MAB"},
		{"move A B", "MAB"},
		{"move a #5", "MA___R"},
		{"move a 5", "MA___R"},
		{"move a -1", "MA___M"},
		{"move a 0x0e", "MA__NA"},
		{"move a [14]", "MAM_NA"},
		{"move [14] a", "MMA_NA"},
		{"move [_NA] [ZZZ]", "MMM_NAZZZ"},
		{"move _ a", "M_A"},
		{"move zr a", "MZA"},
		{"add pc sp", "APS"},
		{"sub a b", "SAB"},
		{"mul a b", "PAB"},
		{"div a 0", "QA____"},
		{"and a b", "BAB"},
		{"or a b", "YAB"},
		{"logic a b ANA", "TABANA"},
		{"logic a #1 FQA", "TA___NFQA"},
		{"read c a", "RCA"},
		{"write a b", "WAB"},
		{"write #14 a", "W_A_NA"},
		{"swap b a", "XBA"},
		{"zero c", "ZC_"},
		{"zero [14]", "ZM__NA"},
		{"push sp a", "USA"},
		{"push a", "USA"},
		{"push #3", "US___P"},
		{"pop sp b", "OSB"},
		{"pop b", "OSB"},
		{"return", "OSP"},
		{"call sp #_BA", "CS__BA"},
		{"ifeq c zr", "ECZ"},
		{"ifne a 3", "NA___P"},
		{"iflt a b", "LAB"},
		{"ifge #1 b", "G_B__N"},
		{"load a -13", "VAA"},
		{"load b 0", "VB_"},
		{"inc b 13", "IBZ"},
		{"inc [14] 1", "IMN_NA"},
		{"jump 0", "J__"},
		{"jump 2", "J_O"},
		{"jump -5", "J_I"},
		{"jump 20", "JNG"},
		{"jump 364", "JZZ"},
		{"jump -364", "JAA"},
		{"nop", "J__"},
		{"goto 1", "MP___N"},
		{"hw", "H__"},
		{"hw q", "HQ_"},
		{"hw q r", "HQR"},
		{"AAB OSP", "AABOSP"},
		{"NAA MAO VBM", "NAAMAOVBM"},
		{".word 14 -1 ZZZ", "_NA__MZZZ"},
		{".data test_ string_", "TEST_STRING_"},
		{"move a $(2*3)", "MA___S"},
		{"move a LINENO", "MA___N"},
		{"load a $(TRYTE_MAX - 9841 + 1)", "VAN"},
		{"  move a b ; comment", "MAB"},
		{"; comment only", ""},
	}

	for _, entry := range table {
		prog, err := assemble(t, entry.source)
		if !assert.NoError(err, entry.source) {
			continue
		}
		assert.Equal(entry.text, prog.Text(), entry.source)
	}
}

func TestAssemblerEquate(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".equ TEN 10",
		".equ COUNTER b",
		"move COUNTER $(TEN+4)",
		"inc COUNTER 1",
	)
	assert.NoError(err)
	assert.Equal("MB__NAIBN", prog.Text())
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".org 0",
		"start: .word start end",
		"mid:",
		"  move a #mid",
		"  move a $(mid + 1)",
		"end:",
	)
	assert.NoError(err)
	assert.Equal(tryte.Tryte(0), prog.Origin())
	assert.Equal(tryte.Tryte(6), prog.End())
	assert.Equal("___"+"__S"+"MA___O"+"MA___P", prog.Text())
}

func TestAssemblerOrg(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"nop",
		".org _BA",
		"nop",
	)
	assert.NoError(err)
	assert.Equal(2, len(prog.Lines))
	assert.Equal(ORIGIN_DEFAULT, prog.Lines[0].Address)
	assert.Equal(tryte.Tryte(-337), prog.Lines[1].Address)
	assert.Equal(ORIGIN_DEFAULT.Add(1), prog.End())
	assert.Equal("J__", prog.Text())
	assert.Equal(2, prog.Len())
}

func TestAssemblerStrlen(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"        move b a",
		"loop:   read c a",
		"        ifeq c zr",
		"        jump done",
		"        inc a 1",
		"        jump loop",
		"done:   sub a b",
	)
	assert.NoError(err)
	assert.Equal("MBARCAECZJ_OIANJ_ISAB", prog.Text())
}

func TestAssemblerCall(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"        load a 2",
		"        load b 3",
		"        call sub",
		"        .org _BA",
		"sub:    add a b",
		"        return",
	)
	assert.NoError(err)
	assert.Equal("VAOVBPCS__BA", prog.Text())
	assert.Equal(5, len(prog.Lines))
	assert.Equal("_BA", prog.Lines[3].Address.String())
	assert.Equal(6, prog.Len())
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".macro twice reg",
		"inc reg 1",
		"inc reg 1",
		".endm",
		"twice a",
		"twice c",
	)
	assert.NoError(err)
	assert.Equal("IANIANICNICN", prog.Text())

	prog, err = assemble(t,
		".macro skipz reg",
		"ifne reg zr",
		"jump @out",
		"zero reg",
		"@out:",
		".endm",
		"skipz b",
		"skipz c",
	)
	assert.NoError(err)
	assert.Equal("NBZJ_NZB_"+"NCZJ_NZC_", prog.Text())
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source []string
		err    error
	}){
		{[]string{"bogus a b"}, ErrInstructionInvalid},
		{[]string{"move a"}, ErrOpcodeMissing},
		{[]string{"move a b c"}, ErrOpcodeExtraArgs},
		{[]string{"move #5 a"}, ErrTargetInvalid},
		{[]string{"move 5 a"}, ErrTargetInvalid},
		{[]string{"move a _"}, ErrOperandInvalid},
		{[]string{"hw ab"}, ErrOperandInvalid},
		{[]string{"jump 365"}, ErrJumpRange},
		{[]string{".org 0", "jump far", ".org 400", "far: nop"}, ErrJumpRange},
		{[]string{"load a 14"}, ErrSmallRange},
		{[]string{".data AB"}, ErrDataSyntax},
		{[]string{".data AB1"}, ErrDataSyntax},
		{[]string{".org"}, ErrOrgSyntax},
		{[]string{".org later", "later:"}, ErrOrgSyntax},
		{[]string{"a1:", "a1:"}, ErrLabelDuplicate},
		{[]string{".equ X 1", ".equ X 2"}, ErrEquateDuplicate},
		{[]string{".equ X"}, ErrEquateSyntax},
		{[]string{".equ x y", ".equ y x", "move a #x"}, ErrEquateLoop},
		{[]string{".equ x x2", ".equ x2 x", "jump x"}, ErrEquateLoop},
		{[]string{".macro m"}, ErrMacroLonely},
		{[]string{".endm"}, ErrMacroLonelyEndm},
		{[]string{".macro m", ".macro n"}, ErrMacroNesting},
		{[]string{".macro m", ".endm", ".macro m", ".endm"}, ErrMacroDuplicate},
		{[]string{".macro m x", ".endm", "m"}, ErrMacroSyntax},
		{[]string{"AAB move"}, ErrInstructionInvalid},
	}

	for _, entry := range table {
		_, err := assemble(t, entry.source...)
		assert.ErrorIs(err, entry.err, strings.Join(entry.source, "\n"))
	}

	// Looping equates are skipped by expressions that do not use them.
	_, err := assemble(t, ".equ x y", ".equ y x", "load a $(1+2)")
	assert.NoError(err)
}

func TestAssemblerErrorDetail(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble(t, "nop", "bogus")
	var syntax *ErrSyntax
	if assert.ErrorAs(err, &syntax) {
		assert.Equal(2, syntax.LineNo)
		assert.Equal("bogus", syntax.Line)
	}

	_, err = assemble(t, "nop", "jump nowhere", "nop")
	var missing ErrLabelMissing
	if assert.ErrorAs(err, &missing) {
		assert.Equal(ErrLabelMissing("nowhere"), missing)
	}
	if assert.ErrorAs(err, &syntax) {
		assert.Equal(2, syntax.LineNo)
	}

	_, err = assemble(t, "move a 99999")
	var number ErrParseNumber
	assert.ErrorAs(err, &number)

	_, err = assemble(t, "move a $(1 +)")
	assert.Error(err)

	_, err = assemble(t, `move a $("text")`)
	var expr ErrParseExpression
	assert.True(errors.As(err, &expr))

	_, err = assemble(t, ".macro m", "bogus", ".endm", "m")
	var macro *ErrMacro
	if assert.ErrorAs(err, &macro) {
		assert.Equal("m", macro.Macro)
		assert.Equal(2, macro.Line)
	}
	assert.ErrorIs(err, ErrInstructionInvalid)
}
