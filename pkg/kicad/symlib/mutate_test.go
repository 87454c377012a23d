package symlib

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/kicad-symlib/pkg/kicad/sexp/kicadsexp"
)

func TestDeriveSymbolSerialization(t *testing.T) {
	lib, err := Load(scenarioLibrary)
	require.NoError(t, err)

	_, err = lib.DeriveSymbol("1M_precision", "~Template", PropertiesFrom(
		"Value", "1M",
		"Description", "1MΩ",
	))
	require.NoError(t, err)

	derived := `	(symbol "1M_precision"
		(extends "~Template")
		(property "Value" "1M"
			(at 0 0 0)
			(effects
				(font
					(size 1.27 1.27)
				)
			)
		)
		(property "Description" "1MΩ"
			(at 0 0 0)
			(effects
				(font
					(size 1.27 1.27)
				)
				(hide yes)
			)
		)
	)`
	want := strings.TrimSuffix(scenarioLibrary, "\n)\n") + "\n" + derived + "\n)\n"
	assert.Equal(t, want, Serialize(lib))
}

func TestDeriveSymbolWithPayload(t *testing.T) {
	lib, err := Load(scenarioLibrary)
	require.NoError(t, err)

	pin := kicadsexp.NewNode("pin", kicadsexp.NewSymbol("passive"), kicadsexp.NewSymbol("line"),
		kicadsexp.NewNode("number", kicadsexp.NewString("1")),
	)
	sym, err := lib.DeriveSymbol("P", "~Template", nil, pin)
	require.NoError(t, err)

	require.Len(t, sym.Payload(), 1)
	assert.NotSame(t, pin, sym.Payload()[0], "payload is copied")
	assert.Equal(t, "1", sym.Pins()[0].Number)
	assert.Equal(t, 0, sym.Properties().Len())
}

func TestDeriveSymbolFailuresLeaveLibraryUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		newName  string
		template string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "duplicate name",
			newName:  "10k",
			template: "~Template",
			check: func(t *testing.T, err error) {
				var dupErr *DuplicateNameError
				require.True(t, errors.As(err, &dupErr), "expected DuplicateNameError, got %v", err)
				assert.Equal(t, "10k", dupErr.Name)
			},
		},
		{
			name:     "template name taken by itself",
			newName:  "~Template",
			template: "~Template",
			check: func(t *testing.T, err error) {
				var dupErr *DuplicateNameError
				assert.True(t, errors.As(err, &dupErr), "expected DuplicateNameError, got %v", err)
			},
		},
		{
			name:     "unknown template",
			newName:  "22k",
			template: "~Missing",
			check: func(t *testing.T, err error) {
				var refErr *UnresolvedReferenceError
				require.True(t, errors.As(err, &refErr), "expected UnresolvedReferenceError, got %v", err)
				assert.Equal(t, "22k", refErr.Symbol)
				assert.Equal(t, "~Missing", refErr.Reference)
			},
		},
		{
			name:     "empty name",
			newName:  "",
			template: "~Template",
			check: func(t *testing.T, err error) {
				var schemaErr *SchemaError
				assert.True(t, errors.As(err, &schemaErr), "expected SchemaError, got %v", err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, err := Load(kicad8Library)
			require.NoError(t, err)
			before := Serialize(lib)
			names := lib.SymbolNames()

			sym, err := lib.DeriveSymbol(tt.newName, tt.template, PropertiesFrom("Value", "x"))
			assert.Nil(t, sym)
			tt.check(t, err)

			assert.Equal(t, before, Serialize(lib))
			assert.Equal(t, names, lib.SymbolNames())
		})
	}
}

func TestSetPropertyOverwritesInPlace(t *testing.T) {
	lib, err := Load(kicad6Library)
	require.NoError(t, err)

	require.NoError(t, lib.SetProperty("10k", "Value", "22k"))

	want := strings.Replace(kicad6Library, `"Value" "10k"`, `"Value" "22k"`, 1)
	assert.Equal(t, want, Serialize(lib))
}

func TestSetPropertyCopiesInheritedAttributes(t *testing.T) {
	lib, err := Load(kicad8Library)
	require.NoError(t, err)

	require.NoError(t, lib.SetProperty("10k", "Reference", "RN"))

	added := `		(property "Reference" "RN"
			(at 2.032 0 90)
			(effects
				(font
					(size 1.27 1.27)
				)
			)
		)`
	want := strings.TrimSuffix(kicad8Library, "\n\t)\n)\n") + "\n" + added + "\n\t)\n)\n"
	assert.Equal(t, want, Serialize(lib))

	sym, _ := lib.Symbol("10k")
	assert.Equal(t, []string{"Value", "JLCPCB", "Reference"}, sym.Properties().Keys())
}

func TestSetPropertyKiCad6AssignsID(t *testing.T) {
	lib, err := Load(kicad6Library)
	require.NoError(t, err)

	require.NoError(t, lib.SetProperty("10k", "MPN", "RC0805"))
	require.NoError(t, lib.SetProperty("10k", "Tolerance", "1%"))

	out := Serialize(lib)
	added := `
    (property "MPN" "RC0805"
      (id 4)
      (at 0 0 0)
      (effects
        (font
          (size 1.27 1.27)
        )
        hide
      )
    )
    (property "Tolerance" "1%"
      (id 5)`
	assert.Contains(t, out, added)

	reloaded, err := Load(out)
	require.NoError(t, err)
	sym, _ := reloaded.Symbol("10k")
	mpn, ok := sym.Property("MPN")
	require.True(t, ok)
	attrs, err := mpn.Attributes()
	require.NoError(t, err)
	assert.Equal(t, 4, attrs.ID)
	assert.True(t, attrs.Hidden)
}

func TestSetPropertyKiCad9HidesOnProperty(t *testing.T) {
	lib, err := Load("(kicad_symbol_lib\n\t(version 20241209)\n\t(symbol \"A\"\n\t\t(property \"Value\" \"A\")\n\t)\n)\n")
	require.NoError(t, err)

	require.NoError(t, lib.SetProperty("A", "MPN", "X"))

	want := "(kicad_symbol_lib\n\t(version 20241209)\n\t(symbol \"A\"\n\t\t(property \"Value\" \"A\")\n" +
		"\t\t(property \"MPN\" \"X\"\n\t\t\t(at 0 0 0)\n\t\t\t(hide yes)\n\t\t\t(effects\n\t\t\t\t(font\n\t\t\t\t\t(size 1.27 1.27)\n\t\t\t\t)\n\t\t\t)\n\t\t)\n" +
		"\t)\n)\n"
	assert.Equal(t, want, Serialize(lib))
}

func TestSetPropertyErrors(t *testing.T) {
	lib, err := Load(kicad8Library)
	require.NoError(t, err)

	err = lib.SetProperty("missing", "Value", "x")
	assert.ErrorIs(t, err, ErrSymbolNotFound)

	err = lib.SetProperty("10k", "", "x")
	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestRemoveProperty(t *testing.T) {
	lib, err := Load(kicad8Library)
	require.NoError(t, err)

	removed, err := lib.RemoveProperty("10k", "JLCPCB")
	require.NoError(t, err)
	assert.True(t, removed)

	props, err := lib.EffectiveProperties("10k")
	require.NoError(t, err)
	value, _ := props.Get("JLCPCB")
	assert.Equal(t, "", value, "template value shows through again")

	removed, err = lib.RemoveProperty("10k", "JLCPCB")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = lib.RemoveProperty("missing", "JLCPCB")
	assert.ErrorIs(t, err, ErrSymbolNotFound)

	assert.NotContains(t, Serialize(lib), "C25744")
}

func TestRenameSymbol(t *testing.T) {
	lib, err := Load(kicad8Library)
	require.NoError(t, err)

	require.NoError(t, lib.RenameSymbol("~Template", "Resistor"))

	assert.Equal(t, []string{"Resistor", "10k"}, lib.SymbolNames())
	parent, _ := lib.SymbolDerivedFrom("10k")
	assert.Equal(t, "Resistor", parent)
	_, ok := lib.Symbol("~Template")
	assert.False(t, ok)

	want := strings.ReplaceAll(kicad8Library, "~Template", "Resistor")
	assert.Equal(t, want, Serialize(lib))

	_, err = lib.EffectiveProperties("10k")
	assert.NoError(t, err)
}

func TestRenameSymbolErrors(t *testing.T) {
	lib, err := Load(kicad8Library)
	require.NoError(t, err)

	err = lib.RenameSymbol("missing", "x")
	assert.ErrorIs(t, err, ErrSymbolNotFound)

	err = lib.RenameSymbol("10k", "~Template")
	var dupErr *DuplicateNameError
	assert.True(t, errors.As(err, &dupErr))

	assert.NoError(t, lib.RenameSymbol("10k", "10k"))
	assert.Equal(t, kicad8Library, Serialize(lib))
}

func TestDeleteSymbol(t *testing.T) {
	lib, err := Load(kicad8Library)
	require.NoError(t, err)

	require.NoError(t, lib.DeleteSymbol("10k"))

	cut := strings.Index(kicad8Library, "\n\t(symbol \"10k\"")
	require.Positive(t, cut)
	assert.Equal(t, kicad8Library[:cut]+"\n)\n", Serialize(lib))
	assert.Equal(t, []string{"~Template"}, lib.SymbolNames())

	assert.ErrorIs(t, lib.DeleteSymbol("10k"), ErrSymbolNotFound)
}

func TestDeleteTemplateLeavesDanglingReference(t *testing.T) {
	lib, err := Load(kicad8Library)
	require.NoError(t, err)

	assert.Equal(t, []string{"10k"}, lib.Dependents("~Template"))
	require.NoError(t, lib.DeleteSymbol("~Template"))

	_, err = lib.EffectiveProperties("10k")
	var refErr *UnresolvedReferenceError
	assert.True(t, errors.As(err, &refErr), "expected UnresolvedReferenceError, got %v", err)

	_, err = lib.DeriveSymbol("22k", "~Template", nil)
	assert.True(t, errors.As(err, &refErr))
}

func TestAddSymbol(t *testing.T) {
	src, err := Load(kicad8Library)
	require.NoError(t, err)
	template, _ := src.Symbol("~Template")

	dst, err := Load(scenarioLibrary)
	require.NoError(t, err)

	_, err = dst.AddSymbol(template.Node())
	var dupErr *DuplicateNameError
	require.True(t, errors.As(err, &dupErr))

	require.NoError(t, src.RenameSymbol("~Template", "R"))
	template, _ = src.Symbol("R")
	added, err := dst.AddSymbol(template.Node())
	require.NoError(t, err)

	assert.Equal(t, []string{"~Template", "R"}, dst.SymbolNames())
	assert.Equal(t, []string{"R_0_1", "R_1_1"}, added.Units())
	assert.NotSame(t, template.Node(), added.Node())

	_, err = dst.AddSymbol(kicadsexp.NewNode("pin"))
	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))

	reloaded, err := Load(Serialize(dst))
	require.NoError(t, err)
	assert.Equal(t, dst.SymbolNames(), reloaded.SymbolNames())
}
