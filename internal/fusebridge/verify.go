package fusebridge

import (
	"fmt"

	"github.com/moby/sys/mountinfo"
)

// Verify confirms mountpoint is actually an active mount, by scanning
// the running process's mount table rather than trusting that Mount
// having returned without error means the kernel finished attaching
// it.
func Verify(mountpoint string) error {
	mounts, err := mountinfo.GetMounts(mountinfo.SingleEntryFilter(mountpoint))
	if err != nil {
		return fmt.Errorf("fusebridge: reading mount table: %w", err)
	}
	if len(mounts) == 0 {
		return fmt.Errorf("fusebridge: %s is not mounted", mountpoint)
	}
	return nil
}
