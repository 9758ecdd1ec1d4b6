// Package testsupport provides shared builders for pwsplit tests: per-test
// configuration with temp directories and a pw-dump shaped graph fixture
// builder.
package testsupport
