package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/vitalis-app/cputray/internal/app"
)

const consoleHelp = `commands:
  top                  list the top processes
  kill PID             terminate a process
  force PID            force kill a process
  restart NAME         launch an application
  pin PID [POS]        pin a process at a list position
  unpin                clear the pin
  click left|right|double
  alert show|hide
  settings             print current settings
  quit                 exit
`

var errUsage = errors.New("usage")

// runConsole reads line commands from in until EOF or ctx is done, standing
// in for the popup's buttons when there is no native UI.
func runConsole(ctx context.Context, in io.Reader, out io.Writer, cmds *app.Commands, logger *zap.Logger) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := execute(ctx, cmds, line, out); err != nil {
			if errors.Is(err, errUsage) {
				fmt.Fprint(out, consoleHelp)
				continue
			}
			fmt.Fprintf(out, "error: %v\n", err)
			logger.Debug("Console command failed", zap.String("command", line), zap.Error(err))
		}
	}
}

// execute runs one console command.
func execute(ctx context.Context, cmds *app.Commands, line string, out io.Writer) error {
	fields := strings.Fields(line)
	arg := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	switch fields[0] {
	case "top", "list":
		views, err := cmds.ListTopProcesses(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tPID\tNAME\tCPU\tCLASS\t")
		for _, v := range views {
			pin := ""
			if v.Pinned {
				pin = " *"
			}
			fmt.Fprintf(tw, "%d%s\t%d\t%s\t%.1f%%\t%s\t\n", v.Rank, pin, v.PID, v.Name, v.CPUUsage, v.Class)
		}
		return tw.Flush()

	case "kill", "force":
		pid, err := strconv.ParseUint(arg(1), 10, 32)
		if err != nil {
			return errUsage
		}
		var msg string
		if fields[0] == "force" {
			msg, err = cmds.ForceKillProcess(ctx, uint32(pid))
		} else {
			msg, err = cmds.TerminateProcess(ctx, uint32(pid))
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)

	case "restart":
		name := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		if name == "" {
			return errUsage
		}
		msg, err := cmds.RestartProcess(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)

	case "pin":
		pid, err := strconv.ParseUint(arg(1), 10, 32)
		if err != nil {
			return errUsage
		}
		pos := 0
		if p := arg(2); p != "" {
			if pos, err = strconv.Atoi(p); err != nil {
				return errUsage
			}
		}
		cmds.PinProcess(uint32(pid), pos)

	case "unpin":
		cmds.UnpinProcess()

	case "click":
		switch arg(1) {
		case "left":
			cmds.HandleTrayClick(app.ClickLeft)
		case "right":
			cmds.HandleTrayClick(app.ClickRight)
		case "double":
			cmds.HandleTrayClick(app.ClickDoubleLeft)
		default:
			return errUsage
		}

	case "alert":
		switch arg(1) {
		case "show":
			return cmds.ShowHighCPUAlert()
		case "hide":
			return cmds.HideHighCPUAlert()
		default:
			return errUsage
		}

	case "settings":
		s := cmds.Settings()
		fmt.Fprintf(out, "refresh %ds, mode %s, threshold %.1f%% for %ds, popup %t\n",
			s.RefreshInterval, s.TrayDisplayMode, s.HighCPUThreshold, s.HighCPUDuration, s.EnableHighCPUPopup)

	case "quit", "exit":
		cmds.Exit()

	default:
		return errUsage
	}
	return nil
}
