// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package javasrc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/stubgen/internal/render"
	"github.com/petar-djukic/stubgen/pkg/types"
)

var sources = map[string]string{
	"com/acme/api/Color.java": `package com.acme.api;

public enum Color {
    RED, GREEN, BLUE
}
`,
	"com/acme/api/Code.java": `package com.acme.api;

public enum Code implements java.io.Serializable {
    A("x", 1L, (short) 3),
    B("y\n", -2L, (short) 4);

    private final String label;
    private final long weight;
    private final short rank;

    Code(String label, long weight, short rank) {
        this.label = label;
        this.weight = weight;
        this.rank = rank;
    }

    public String getLabel() { return label; }
}
`,
	"com/acme/api/Repo.java": `package com.acme.api;

import java.io.IOException;
import java.util.*;

public interface Repo<T extends Entity> extends AutoCloseable {
    List<T> find(String key, long limit) throws IOException;
    void clear();
    Map<String, ? extends Entity> index();
    static Repo<Entity> empty() { return null; }
    <R> R map(java.util.function.Function<T, R> fn, int... opts);
}
`,
	"com/acme/api/Entity.java": `package com.acme.api;

public class Entity extends Base implements Comparable<Entity> {
    private static final long serialVersionUID = 7L;
    private String id;
    private int[] scores, extra[];
    protected Color color;

    public int compareTo(Entity o) { return 0; }
}
`,
	"com/acme/api/Base.java": `package com.acme.api;

public abstract class Base {
}
`,
	"build/com/acme/api/Generated.java": `package com.acme.api;
public class Generated {}
`,
	"gen/com/acme/api/Skipped.java": `package com.acme.api;
public class Skipped {}
`,
	".gitignore": "gen/\n",
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func loadSources(t *testing.T) *Provider {
	t.Helper()
	p, err := Load(context.Background(), writeTree(t, sources))
	require.NoError(t, err)
	require.Empty(t, p.Errors())
	return p
}

func TestLoad_Index(t *testing.T) {
	p := loadSources(t)
	assert.Equal(t, []string{
		"com.acme.api.Base",
		"com.acme.api.Code",
		"com.acme.api.Color",
		"com.acme.api.Entity",
		"com.acme.api.Repo",
	}, p.Names())
}

func TestLookup_Class(t *testing.T) {
	p := loadSources(t)
	d, err := p.Lookup("com.acme.api.Entity")
	require.NoError(t, err)

	assert.Equal(t, types.Structured, d.Category)
	assert.Equal(t, "com.acme.api", d.Namespace)
	assert.Equal(t, []string{"public"}, d.Modifiers)
	require.NotNil(t, d.Supertype)
	assert.Equal(t, types.NamedRef("com.acme.api.Base"), *d.Supertype)
	assert.Equal(t, []types.TypeRef{
		types.GenericRef("java.lang.Comparable", types.NamedRef("com.acme.api.Entity")),
	}, d.Contracts)

	fields := d.Fields()
	require.Len(t, fields, 5)
	assert.Equal(t, "serialVersionUID", fields[0].Name)
	assert.True(t, fields[0].Static)
	assert.Equal(t, int64(7), fields[0].Value)
	assert.Equal(t, types.NamedRef("java.lang.String"), fields[1].Type)
	assert.Equal(t, types.ArrayRef(types.NamedRef("int")), fields[2].Type)
	assert.Equal(t, types.ArrayRef(types.ArrayRef(types.NamedRef("int"))), fields[3].Type)
	assert.Equal(t, types.NamedRef("com.acme.api.Color"), fields[4].Type)
	assert.Equal(t, []string{"protected"}, fields[4].Modifiers)
}

func TestLookup_Interface(t *testing.T) {
	p := loadSources(t)
	d, err := p.Lookup("com.acme.api.Repo")
	require.NoError(t, err)

	assert.Equal(t, types.Contract, d.Category)
	require.Len(t, d.TypeParams, 1)
	assert.Equal(t, types.TypeParam{Name: "T", Bounds: []types.TypeRef{types.NamedRef("com.acme.api.Entity")}}, d.TypeParams[0])
	assert.Equal(t, []types.TypeRef{types.NamedRef("java.lang.AutoCloseable")}, d.Contracts)

	methods := d.Methods()
	require.Len(t, methods, 4)

	assert.Equal(t, "find", methods[0].Name)
	assert.Equal(t, types.GenericRef("java.util.List", types.VarRef("T")), methods[0].Return)
	assert.Equal(t, []types.TypeRef{types.NamedRef("java.lang.String"), types.NamedRef("long")}, methods[0].Params)
	assert.Equal(t, []types.TypeRef{types.NamedRef("java.io.IOException")}, methods[0].Exceptions)

	assert.True(t, methods[1].Return.IsZero())

	entity := types.NamedRef("com.acme.api.Entity")
	assert.Equal(t, types.GenericRef("java.util.Map",
		types.NamedRef("java.lang.String"),
		types.WildcardRef(&entity, false),
	), methods[2].Return)

	assert.Equal(t, "map", methods[3].Name)
	assert.Equal(t, types.VarRef("R"), methods[3].Return)
	assert.Equal(t, []types.TypeRef{
		types.GenericRef("java.util.function.Function", types.VarRef("T"), types.VarRef("R")),
		types.ArrayRef(types.NamedRef("int")),
	}, methods[3].Params)
}

func TestEnum_ConstantsAndValues(t *testing.T) {
	p := loadSources(t)

	color, err := p.Lookup("com.acme.api.Color")
	require.NoError(t, err)
	consts, err := p.Constants(color)
	require.NoError(t, err)
	assert.Equal(t, []types.EnumConstant{{Name: "RED"}, {Name: "GREEN", Ordinal: 1}, {Name: "BLUE", Ordinal: 2}}, consts)
	assert.Empty(t, color.InstanceFields())

	code, err := p.Lookup("com.acme.api.Code")
	require.NoError(t, err)
	consts, err = p.Constants(code)
	require.NoError(t, err)
	require.Len(t, consts, 2)

	fields := code.InstanceFields()
	require.Len(t, fields, 3)

	tests := []struct {
		constant int
		field    int
		want     any
	}{
		{0, 0, "x"},
		{0, 1, int64(1)},
		{0, 2, int16(3)},
		{1, 0, "y\n"},
		{1, 1, int64(-2)},
		{1, 2, int16(4)},
	}
	for _, tt := range tests {
		got, err := p.FieldValue(code, consts[tt.constant], fields[tt.field])
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestEnum_Renders(t *testing.T) {
	p := loadSources(t)
	code, err := p.Lookup("com.acme.api.Code")
	require.NoError(t, err)

	decl, err := render.NewFormatter(p, nil, render.Options{}).Format(code)
	require.NoError(t, err)
	assert.Equal(t, "public enum Code implements java.io.Serializable", decl.Header)
	assert.Equal(t, []string{
		`A("x", 1L, (short)3),`,
		`B("y\n", -2L, (short)4);`,
		"private final java.lang.String label;",
		"private final long weight;",
		"private final short rank;",
	}, decl.Body)
}

func TestLookup_Unknown(t *testing.T) {
	p := loadSources(t)
	_, err := p.Lookup("com.acme.api.Generated")
	assert.True(t, errors.Is(err, types.ErrTypeNotFound))
}

func TestLoad_SyntaxErrorsAreReported(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Broken.java": "package com.acme.broken;\n\npublic class Broken { int x = ; }\n",
	})
	p, err := Load(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, p.Errors(), 1)
	assert.Contains(t, p.Errors()[0].Error(), "Broken.java")
}

func TestLoad_DuplicateType(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/Dup.java": "package com.acme;\npublic class Dup {}\n",
		"b/Dup.java": "package com.acme;\npublic class Dup {}\n",
	})
	_, err := Load(context.Background(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared in both")
}

func TestRecord(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Point.java": "package com.acme;\npublic record Point(int x, java.util.List<String> tags) {}\n",
	})
	p, err := Load(context.Background(), filepath.Join(root, "Point.java"))
	require.NoError(t, err)

	d, err := p.Lookup("com.acme.Point")
	require.NoError(t, err)
	assert.Equal(t, types.Structured, d.Category)
	fields := d.InstanceFields()
	require.Len(t, fields, 2)
	assert.Equal(t, types.NamedRef("int"), fields[0].Type)
	assert.Equal(t, types.GenericRef("java.util.List", types.NamedRef("java.lang.String")), fields[1].Type)
}

func TestMemberTypes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"com/acme/Api.java": `package com.acme;

public interface Api {
    Api.Status status();
    Status last();
    Reply reply(Reply.Kind kind);

    enum Status { OK, FAIL }

    class Reply {
        private Kind kind;
        private Status status;

        public enum Kind { FULL, EMPTY }
    }
}
`,
	})
	p, err := Load(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"com.acme.Api",
		"com.acme.Api.Reply",
		"com.acme.Api.Reply.Kind",
		"com.acme.Api.Status",
	}, p.Names())

	api, err := p.Lookup("com.acme.Api")
	require.NoError(t, err)
	methods := api.Methods()
	require.Len(t, methods, 3)
	assert.Equal(t, types.NamedRef("com.acme.Api.Status"), methods[0].Return)
	assert.Equal(t, types.NamedRef("com.acme.Api.Status"), methods[1].Return)
	assert.Equal(t, types.NamedRef("com.acme.Api.Reply"), methods[2].Return)
	assert.Equal(t, []types.TypeRef{types.NamedRef("com.acme.Api.Reply.Kind")}, methods[2].Params)

	status, err := p.Lookup("com.acme.Api.Status")
	require.NoError(t, err)
	assert.Equal(t, types.Enumerated, status.Category)
	assert.Equal(t, "com.acme", status.Namespace)
	assert.Equal(t, "Status", status.SimpleName())
	consts, err := p.Constants(status)
	require.NoError(t, err)
	assert.Len(t, consts, 2)

	reply, err := p.Lookup("com.acme.Api.Reply")
	require.NoError(t, err)
	fields := reply.InstanceFields()
	require.Len(t, fields, 2)
	assert.Equal(t, types.NamedRef("com.acme.Api.Reply.Kind"), fields[0].Type)
	assert.Equal(t, types.NamedRef("com.acme.Api.Status"), fields[1].Type)
}

func TestUnknownNameInScannedWildcardPackage(t *testing.T) {
	root := writeTree(t, map[string]string{
		"com/acme/model/Item.java": "package com.acme.model;\npublic class Item {}\n",
		"com/acme/api/Shop.java": `package com.acme.api;

import com.acme.model.*;

public interface Shop {
    Item item();
    Missing missing();
    java.util.List<Item> items();
}
`,
	})
	p, err := Load(context.Background(), root)
	require.NoError(t, err)

	shop, err := p.Lookup("com.acme.api.Shop")
	require.NoError(t, err)
	methods := shop.Methods()
	require.Len(t, methods, 3)
	assert.Equal(t, types.NamedRef("com.acme.model.Item"), methods[0].Return)
	assert.Equal(t, types.NamedRef("java.lang.Missing"), methods[1].Return)
	assert.Equal(t, types.GenericRef("java.util.List", types.NamedRef("com.acme.model.Item")), methods[2].Return)
}
