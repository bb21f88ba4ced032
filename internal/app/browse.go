package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tibiasim/gear_roster/internal/domain"
	"github.com/tibiasim/gear_roster/internal/engine"
	"github.com/tibiasim/gear_roster/internal/output"
	"github.com/tibiasim/gear_roster/internal/ranking"
)

const browseHelp = `commands:
  next <slot> | prev <slot>   move the cursor of a slot
  show [slot]                 print the ranking, or the current item of a slot
  strategy <defense|balanced> change the strategy
  level <n>                   change the level
  vocation <name>             change the vocation
  weapon <name|none>          change the weapon preference
  calc                        recalculate with the current settings
  quit                        leave`

// browseState is the interactive presentation layer: settings change only the
// pending context, "calc" recomputes.
type browseState struct {
	session  *engine.Session
	catalog  []domain.Item
	ctx      domain.PlayerContext
	profile  domain.DamageProfile
	strategy domain.Strategy
	out      io.Writer
}

func (b *browseState) loop(in io.Reader) error {
	fmt.Fprintln(b.out, `type "help" for commands`)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(b.out)
			return sc.Err()
		}
		if quit := b.exec(sc.Text()); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the loop should end.
func (b *browseState) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, arg := strings.ToLower(fields[0]), strings.Join(fields[1:], " ")

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(b.out, browseHelp)
	case "next", "prev", "previous", "n", "p":
		dir, _ := ranking.ParseDirection(cmd)
		slot := domain.NormalizeSlot(arg)
		if !b.session.Result().Has(slot) {
			fmt.Fprintf(b.out, "unknown slot %q\n", arg)
			return false
		}
		b.session.AdvanceCursor(slot, dir)
		output.PrintCurrent(b.out, b.session.Browser(), slot)
	case "show":
		if arg == "" {
			output.PrintRanking(b.out, b.session.Browser(), printTop)
		} else {
			output.PrintCurrent(b.out, b.session.Browser(), domain.NormalizeSlot(arg))
		}
	case "strategy":
		s, err := domain.ParseStrategy(arg)
		if err != nil {
			fmt.Fprintln(b.out, err)
			return false
		}
		b.strategy = s
		b.pending("strategy", s.String())
	case "level":
		lvl, err := strconv.Atoi(arg)
		if err != nil || lvl < 0 {
			fmt.Fprintf(b.out, "invalid level %q\n", arg)
			return false
		}
		b.ctx.Level = lvl
		b.pending("level", arg)
	case "vocation":
		b.ctx.Vocation = arg
		if _, ok := domain.ParseVocation(arg); !ok {
			fmt.Fprintf(b.out, "unknown vocation %q, no vocation restrictions will apply\n", arg)
		}
		b.pending("vocation", arg)
	case "weapon":
		if strings.EqualFold(arg, "none") {
			arg = ""
		}
		b.ctx.WeaponPreference = arg
		b.pending("weapon", arg)
	case "calc":
		b.session.Calculate(b.catalog, b.ctx, b.profile, b.strategy)
		output.PrintRanking(b.out, b.session.Browser(), printTop)
	default:
		fmt.Fprintf(b.out, "unknown command %q\n", cmd)
	}
	return false
}

func (b *browseState) pending(what, value string) {
	fmt.Fprintf(b.out, "%s set to %q (run calc to apply)\n", what, value)
}
