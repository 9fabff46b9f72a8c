//go:build linux

package cogs

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// EnterSandbox uses Landlock to restrict filesystem writes of the whole
// process to the working directory, so snippets cannot scribble elsewhere.
// Reads stay unrestricted.
func EnterSandbox() error {
	abi, _, errNo := unix.Syscall(
		unix.SYS_LANDLOCK_CREATE_RULESET,
		0, 0, unix.LANDLOCK_CREATE_RULESET_VERSION,
	)
	if errNo != 0 {
		return fmt.Errorf("landlock_create_ruleset(version): %w", errNo)
	}
	if abi < 1 {
		return fmt.Errorf("landlock disabled by kernel")
	}

	writeAccess := uint64(unix.LANDLOCK_ACCESS_FS_WRITE_FILE |
		unix.LANDLOCK_ACCESS_FS_REMOVE_FILE |
		unix.LANDLOCK_ACCESS_FS_REMOVE_DIR |
		unix.LANDLOCK_ACCESS_FS_MAKE_REG |
		unix.LANDLOCK_ACCESS_FS_MAKE_DIR |
		unix.LANDLOCK_ACCESS_FS_MAKE_SYM)
	if abi >= 3 {
		writeAccess |= unix.LANDLOCK_ACCESS_FS_TRUNCATE
	}

	rulesetAttr := unix.LandlockRulesetAttr{
		Access_fs: writeAccess,
	}
	rulesetFd, _, errNo := unix.Syscall(
		unix.SYS_LANDLOCK_CREATE_RULESET,
		uintptr(unsafe.Pointer(&rulesetAttr)),
		unsafe.Sizeof(rulesetAttr),
		0,
	)
	if errNo != 0 {
		return fmt.Errorf("landlock_create_ruleset: %w", errNo)
	}
	defer unix.Close(int(rulesetFd))

	workingDir, err := os.Getwd()
	if err != nil {
		return err
	}
	dirFd, err := unix.Open(workingDir, unix.O_PATH|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", workingDir, err)
	}
	defer unix.Close(dirFd)

	pathBeneath := unix.LandlockPathBeneathAttr{
		Allowed_access: writeAccess,
		Parent_fd:      int32(dirFd),
	}
	if _, _, errNo := unix.Syscall(
		unix.SYS_LANDLOCK_ADD_RULE,
		rulesetFd,
		unix.LANDLOCK_RULE_PATH_BENEATH,
		uintptr(unsafe.Pointer(&pathBeneath)),
	); errNo != 0 {
		return fmt.Errorf("landlock_add_rule: %w", errNo)
	}

	if err := unix.Prctl(unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0); err != nil {
		return fmt.Errorf("prctl no_new_privs: %w", err)
	}
	if _, _, errNo := unix.Syscall(
		unix.SYS_LANDLOCK_RESTRICT_SELF,
		rulesetFd,
		0, 0,
	); errNo != 0 {
		return fmt.Errorf("landlock_restrict_self: %w", errNo)
	}
	return nil
}
