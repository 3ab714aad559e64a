package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	Convey("Given a config file", t, func() {
		tempDir, err := os.MkdirTemp("", "config_test")
		So(err, ShouldBeNil)
		defer os.RemoveAll(tempDir)

		configPath := filepath.Join(tempDir, "config.yaml")

		write := func(content string) {
			So(os.WriteFile(configPath, []byte(content), 0644), ShouldBeNil)
		}

		Convey("When the file is complete and valid", func() {
			write(`
app:
  name: bucketsync-prod
  log_level: debug
  log_file: /var/log/bucketsync/app.log
sync:
  schedule: "0 */30 * * * *"
targets:
  - name: odoo
    folder: /var/backups/odoo
    bucket: prod-backups
    prefix: odoo/daily
    region: eu-west-1
    access_key: AKIAEXAMPLE
    secret_key: sekrit
    enabled: true
  - name: gitea
    folder: /var/backups/gitea
    bucket: prod-backups
    prefix: gitea
    region: eu-west-1
    access_key: AKIAEXAMPLE
    secret_key: sekrit
    enabled: false
telegram:
  enabled: true
  bot_token: "123:abc"
  chat_id: "-100200300"
`)

			cfg, err := Load(configPath)

			Convey("It should load every section", func() {
				So(err, ShouldBeNil)
				So(cfg, ShouldNotBeNil)
				So(cfg.App.Name, ShouldEqual, "bucketsync-prod")
				So(cfg.App.LogLevel, ShouldEqual, "debug")
				So(cfg.Sync.Schedule, ShouldEqual, "0 */30 * * * *")
				So(len(cfg.Targets), ShouldEqual, 2)
				So(cfg.Targets[0].Folder, ShouldEqual, "/var/backups/odoo")
				So(cfg.Targets[0].Bucket, ShouldEqual, "prod-backups")
				So(cfg.Targets[0].AccessKey, ShouldEqual, "AKIAEXAMPLE")
				So(cfg.Telegram.Enabled, ShouldBeTrue)
				So(cfg.Telegram.ChatID, ShouldEqual, "-100200300")
			})

			Convey("EnabledTargets should keep only enabled ones", func() {
				So(err, ShouldBeNil)
				enabled := cfg.EnabledTargets()
				So(len(enabled), ShouldEqual, 1)
				So(enabled[0].Name, ShouldEqual, "odoo")
			})
		})

		Convey("When optional fields are omitted", func() {
			write(`
targets:
  - folder: /var/backups/odoo
    bucket: prod-backups
    prefix: "  odoo/daily  "
    region: eu-west-1
    access_key: AKIAEXAMPLE
    secret_key: sekrit
    enabled: true
`)

			cfg, err := Load(configPath)

			Convey("It should fall back to defaults and normalize", func() {
				So(err, ShouldBeNil)
				So(cfg.App.Name, ShouldEqual, "bucketsync")
				So(cfg.App.LogLevel, ShouldEqual, "info")
				So(cfg.Sync.Schedule, ShouldEqual, "0 0 2 * * *")
				So(cfg.Targets[0].Prefix, ShouldEqual, "odoo/daily")
				So(cfg.Targets[0].Name, ShouldEqual, "prod-backups/odoo/daily")
				So(cfg.Telegram.Enabled, ShouldBeFalse)
			})
		})

		Convey("When the file does not exist", func() {
			cfg, err := Load(filepath.Join(tempDir, "missing.yaml"))

			Convey("It should return a read error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "failed to read config")
				So(cfg, ShouldBeNil)
			})
		})

		Convey("When no targets are configured", func() {
			write(`
app:
  log_level: info
`)

			cfg, err := Load(configPath)

			Convey("It should fail validation", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "at least one target configuration is required")
				So(cfg, ShouldBeNil)
			})
		})

		Convey("When a target is missing its bucket", func() {
			write(`
targets:
  - folder: /var/backups/odoo
    prefix: odoo
    region: eu-west-1
    access_key: AKIAEXAMPLE
    secret_key: sekrit
`)

			_, err := Load(configPath)

			Convey("It should name the offending target", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "targets[0]: bucket is required")
			})
		})

		Convey("When a prefix is only whitespace", func() {
			write(`
targets:
  - folder: /var/backups/odoo
    bucket: prod-backups
    prefix: "   "
    region: eu-west-1
    access_key: AKIAEXAMPLE
    secret_key: sekrit
`)

			_, err := Load(configPath)

			Convey("It should be rejected as missing", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "targets[0]: prefix is required")
			})
		})

		Convey("When a target has no credentials", func() {
			write(`
targets:
  - folder: /var/backups/odoo
    bucket: prod-backups
    prefix: odoo
    region: eu-west-1
`)

			_, err := Load(configPath)

			Convey("It should fail validation", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "targets[0]: access_key and secret_key are required")
			})
		})

		Convey("When telegram is enabled without a token", func() {
			write(`
targets:
  - folder: /var/backups/odoo
    bucket: prod-backups
    prefix: odoo
    region: eu-west-1
    access_key: AKIAEXAMPLE
    secret_key: sekrit
telegram:
  enabled: true
`)

			_, err := Load(configPath)

			Convey("It should fail validation", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "telegram: bot_token and chat_id are required when enabled")
			})
		})

		Convey("When the file is not valid yaml", func() {
			write(`targets: [`)

			cfg, err := Load(configPath)

			Convey("It should return a read error", func() {
				So(err, ShouldNotBeNil)
				So(cfg, ShouldBeNil)
			})
		})
	})
}
