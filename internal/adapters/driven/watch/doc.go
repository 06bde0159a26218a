// Package watch reports changes made to a role file by other processes.
//
// The watcher observes the file's parent directory with fsnotify, since
// role stores replace the file by renaming a temp file over it. Each
// relevant event is re-read through a private, uncached store so the
// watcher never shares state with a live role directory.
package watch
