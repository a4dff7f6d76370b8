package gmsec

import (
	"os"
	"strings"
	"testing"
)

func testDirectory(t *testing.T) *Directory {
	t.Helper()
	data, err := os.ReadFile("testdata/2019.00/DirectoryFile.xml")
	if err != nil {
		t.Fatalf("reading testdata directory file: %v", err)
	}
	dir, err := ParseDirectory(strings.NewReader(string(data)), 0)
	if err != nil {
		t.Fatalf("ParseDirectory: %v", err)
	}
	return dir
}

func TestLoadXSDTemplateHeader(t *testing.T) {
	dir := testDirectory(t)
	tmpl, loaded, err := loadXSDTemplate("testdata/2019.00/C2MS_HEADER.xsd", dir, 201900, 0)
	if err != nil {
		t.Fatalf("loadXSDTemplate: %v", err)
	}
	if !loaded {
		t.Fatal("expected HEADER template to load at level 0")
	}
	if tmpl.SchemaID != "HEADER" {
		t.Fatalf("SchemaID = %q, want HEADER", tmpl.SchemaID)
	}
	if len(tmpl.Fields) != 3 {
		t.Fatalf("got %d header fields, want 3", len(tmpl.Fields))
	}
	if len(tmpl.SubjectElements) != 2 {
		t.Fatalf("got %d header subject elements, want 2", len(tmpl.SubjectElements))
	}
}

func TestLoadXSDTemplateMessage(t *testing.T) {
	dir := testDirectory(t)
	tmpl, loaded, err := loadXSDTemplate("testdata/2019.00/C2MS_Msg_Log.xsd", dir, 201900, 0)
	if err != nil {
		t.Fatalf("loadXSDTemplate: %v", err)
	}
	if !loaded {
		t.Fatal("expected MSG.LOG template to load at level 0")
	}
	if tmpl.SchemaID != "MSG.LOG" {
		t.Fatalf("SchemaID = %q, want MSG.LOG", tmpl.SchemaID)
	}

	var severity *FieldTemplate
	for _, f := range tmpl.Fields {
		if f.Name() == "SEVERITY" {
			severity = f
		}
	}
	if severity == nil {
		t.Fatal("SEVERITY field not found")
	}
	if severity.ConcatenatedTypes() != "I16" {
		t.Fatalf("SEVERITY types = %q, want I16", severity.ConcatenatedTypes())
	}
	if severity.ConcatenatedValues() != "1,2,3,4" {
		t.Fatalf("SEVERITY values = %q, want 1,2,3,4", severity.ConcatenatedValues())
	}

	if len(tmpl.SubjectElements) != 4 {
		t.Fatalf("got %d subject elements, want 4", len(tmpl.SubjectElements))
	}
}

func TestLoadXSDTemplateControlFieldAndDependency(t *testing.T) {
	dir := testDirectory(t)
	tmpl, loaded, err := loadXSDTemplate("testdata/2019.00/C2MS_Msg_Hb.xsd", dir, 201900, 0)
	if err != nil {
		t.Fatalf("loadXSDTemplate: %v", err)
	}
	if !loaded {
		t.Fatal("expected MSG.HB template to load at level 0")
	}

	var control, counter *FieldTemplate
	for _, f := range tmpl.Fields {
		switch f.Name() {
		case "COMPONENT-STATUS.1":
			control = f
		case "COUNTER":
			counter = f
		}
	}
	if control == nil {
		t.Fatal("CONTROL field COMPONENT-STATUS.1 not found")
	}
	if control.Class() != ClassControl {
		t.Fatalf("control field class = %v, want CONTROL", control.Class())
	}
	if len(control.Children()) != 1 || control.Children()[0].Name() != "COMPONENT-STATUS" {
		t.Fatalf("control field children = %+v", control.Children())
	}

	if counter == nil {
		t.Fatal("COUNTER field not found")
	}
	if len(counter.Dependencies()) != 1 || counter.Dependencies()[0].Name != "PUB-RATE" {
		t.Fatalf("COUNTER dependencies = %+v", counter.Dependencies())
	}
}

func TestLoadXSDTemplateSkipsAboveConfiguredLevel(t *testing.T) {
	dir := testDirectory(t)
	_, loaded, err := loadXSDTemplate("testdata/2019.00/C2MS_Msg_Log.xsd", dir, 201900, -1)
	if err != nil {
		t.Fatalf("loadXSDTemplate: %v", err)
	}
	if loaded {
		t.Fatal("expected a schema above configuredLevel to be skipped")
	}
}
