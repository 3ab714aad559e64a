package logger

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given the logger package", t, func() {
		Convey("When creating a logger with console output only", func() {
			log, err := New("info", "")

			Convey("It should create a logger successfully", func() {
				So(err, ShouldBeNil)
				So(log, ShouldNotBeNil)
				So(func() { log.Infof("uploaded %d file(s)", 3) }, ShouldNotPanic)
				So(func() { log.Close() }, ShouldNotPanic)
			})
		})

		Convey("When creating a logger with a file sink", func() {
			tempDir, err := os.MkdirTemp("", "logger_test")
			So(err, ShouldBeNil)
			defer os.RemoveAll(tempDir)

			logFile := filepath.Join(tempDir, "nested", "bucketsync.log")

			log, err := New("debug", logFile)

			Convey("It should create the directory and the log file", func() {
				So(err, ShouldBeNil)
				So(log, ShouldNotBeNil)

				log.Debug("test debug line")
				log.Close()

				_, err := os.Stat(logFile)
				So(err, ShouldBeNil)
			})
		})

		Convey("When the level string is unknown", func() {
			log, err := New("loud", "")

			Convey("It should fall back to info and still work", func() {
				So(err, ShouldBeNil)
				So(log, ShouldNotBeNil)
				So(func() { log.Info("still logging") }, ShouldNotPanic)
				So(func() { log.Debug("suppressed at info") }, ShouldNotPanic)
			})
		})

		Convey("When the log directory cannot be created", func() {
			// /dev/null is a file, so MkdirAll below it must fail even for root.
			log, err := New("info", "/dev/null/sub/bucketsync.log")

			Convey("It should return an error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "failed to create log directory")
				So(log, ShouldBeNil)
			})
		})

		Convey("When closing a logger with a file sink", func() {
			tempDir, err := os.MkdirTemp("", "logger_test")
			So(err, ShouldBeNil)
			defer os.RemoveAll(tempDir)

			logFile := filepath.Join(tempDir, "bucketsync.log")

			log, err := New("info", logFile)
			So(err, ShouldBeNil)

			log.Info("one line before close")

			Convey("It should close without panicking", func() {
				So(func() { log.Close() }, ShouldNotPanic)

				_, err := os.Stat(logFile)
				So(err, ShouldBeNil)
			})
		})
	})
}
