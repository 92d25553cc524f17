// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/syncthing/notify"
)

const settle = 100 * time.Millisecond

// watch runs rebuild once and then after every burst of changes to files,
// until ctx is canceled. Directories are watched rather than the files
// themselves, since editors often save by replacing a file.
func watch(ctx context.Context, files []string, rebuild func()) int {
	wanted := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	// Make the channel buffered to ensure no event is dropped. Notify will drop
	// an event if the receiver is not able to keep up the sending pace.
	c := make(chan notify.EventInfo, 16)
	for dir := range dirs {
		if err := notify.Watch(dir, c, notify.Write|notify.Create|notify.Rename|notify.Remove); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch %s: %v\n", dir, err)
			return 1
		}
	}
	defer notify.Stop(c)

	rebuild()
	color.Cyan("Watching %d schemas for changes...", len(files))

	// Batch events: rebuild only if no new events arrive within settle
	var timer *time.Timer
	timeout := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		// Block forever if timer is nil
		return make(chan time.Time)
	}
	for {
		select {
		case ev := <-c:
			if !wanted[ev.Path()] {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(settle)
		case <-timeout():
			timer = nil
			rebuild()
		case <-ctx.Done():
			return 0
		}
	}
}
