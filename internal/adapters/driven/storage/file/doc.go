// Package file provides a structured-file implementation of driven.RoleStore.
//
// The role file is addressed by a local path or an afs URL
// (github.com/viant/afs), so the same adapter serves file://, mem:// and
// any other registered scheme. The encoding follows the file extension:
//
//   - .xml: the legacy XML layout (<roles><role><name/><users><user/></users></role></roles>)
//   - .toml: [[role]] tables with name and users keys
//
// # Thread Safety
//
// RoleStore is not safe for concurrent use. The role directory serialises
// all access.
package file
