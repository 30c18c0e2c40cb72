package util

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/toumei/toumei/filesystem"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "session", "sessions"), ShouldEqual, "1 session")
		So(Quantify(2, "session", "sessions"), ShouldEqual, "2 sessions")
		So(Quantify(0, "session", "sessions"), ShouldEqual, "0 sessions")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize("éclair"), ShouldEqual, "Éclair")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestTerminalWidth(t *testing.T) {
	Convey("TerminalWidth falls back when stdout is not a terminal", t, func() {
		So(TerminalWidth(80), ShouldBeGreaterThan, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		Convey("A file is removed", func() {
			So(fs.WriteFile("sessions.json", []byte("{}"), 0o644), ShouldBeNil)
			So(Delete("sessions.json"), ShouldBeNil)
			exists, err := fs.Exists("sessions.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})

		Convey("A directory is removed recursively", func() {
			dir := filepath.Join("logs", "nested")
			So(fs.MkdirAll(dir, 0o755), ShouldBeNil)
			So(fs.WriteFile(filepath.Join(dir, "a.log"), []byte("x"), 0o644), ShouldBeNil)
			So(Delete("logs"), ShouldBeNil)
			exists, err := fs.DirExists("logs")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})

		Convey("A missing path reports an error", func() {
			So(Delete("missing"), ShouldNotBeNil)
		})
	})
}
