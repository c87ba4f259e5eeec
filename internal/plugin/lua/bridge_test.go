package lua

import (
	"reflect"
	"testing"

	glua "github.com/yuin/gopher-lua"
)

func TestBridgeToGoValue(t *testing.T) {
	L := glua.NewState()
	defer L.Close()
	b := NewBridge(L)

	if err := L.DoString(`
		arr = {1, 2.5, "x", true}
		obj = {Speed = 3, Name = "steve", Tags = {"a", "b"}}
		sparse = {[1] = "a", [3] = "c"}
	`); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		lv   glua.LValue
		want any
	}{
		{"nil", glua.LNil, nil},
		{"integer", glua.LNumber(4), int64(4)},
		{"float", glua.LNumber(0.5), 0.5},
		{"string", glua.LString("hi"), "hi"},
		{"array", L.GetGlobal("arr"), []any{int64(1), 2.5, "x", true}},
		{"object", L.GetGlobal("obj"), map[string]any{
			"Speed": int64(3),
			"Name":  "steve",
			"Tags":  []any{"a", "b"},
		}},
		{"sparse", L.GetGlobal("sparse"), map[string]any{"1": "a", "3": "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.ToGoValue(tt.lv)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToGoValue() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestBridgeToGoValue_Cycle(t *testing.T) {
	L := glua.NewState()
	defer L.Close()
	b := NewBridge(L)

	if err := L.DoString(`t = {} t.self = t`); err != nil {
		t.Fatal(err)
	}

	got, ok := b.ToGoValue(L.GetGlobal("t")).(map[string]any)
	if !ok {
		t.Fatalf("ToGoValue() = %T, want map", got)
	}
	if got["self"] != nil {
		t.Errorf("cycle should convert to nil, got %#v", got["self"])
	}
}

type label string

func (l label) String() string { return "label:" + string(l) }

func TestBridgeToLuaValue(t *testing.T) {
	L := glua.NewState()
	defer L.Close()
	b := NewBridge(L)

	if got := b.ToLuaValue(nil); got != glua.LNil {
		t.Errorf("nil -> %v", got)
	}
	if got := b.ToLuaValue(7); got != glua.LNumber(7) {
		t.Errorf("7 -> %v", got)
	}
	if got := b.ToLuaValue(label("x")); got != glua.LString("label:x") {
		t.Errorf("Stringer -> %v", got)
	}
	if got := b.ToLuaValue([]int{1, 2}); got.Type() != glua.LTTable {
		t.Errorf("[]int -> %v", got.Type())
	}

	doc := map[string]any{"Speed": 1.5, "Tags": []any{"a"}}
	tbl, ok := b.ToLuaValue(doc).(*glua.LTable)
	if !ok {
		t.Fatal("map should convert to a table")
	}
	if tbl.RawGetString("Speed") != glua.LNumber(1.5) {
		t.Errorf("Speed = %v", tbl.RawGetString("Speed"))
	}

	back := b.ToGoValue(tbl)
	want := map[string]any{"Speed": 1.5, "Tags": []any{"a"}}
	if !reflect.DeepEqual(back, want) {
		t.Errorf("round trip = %#v, want %#v", back, want)
	}
}
