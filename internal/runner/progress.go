package runner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Progress bands inferred from pacman output. The numbers reproduce the
// long-standing heuristic of the GTK front-end this tool grew out of:
// exact fractions matter less than a familiar, steadily advancing bar.
const (
	fracSyncing       = 0.1
	fracCheckingDeps  = 0.2
	fracConflictScan  = 0.3
	fracFileConflicts = 0.4
	fracInstallStart  = 0.5
	fracInstallCap    = 0.9
	fracHooks         = 0.8
	fracBootImages    = 0.85
	fracBootloader    = 0.9

	downloadBandStart = 0.1
	downloadBandWidth = 0.4

	removeBandStart = 0.3
	removeBandWidth = 0.4
)

type state int

const (
	stateIdle state = iota
	stateSyncing
	stateCheckingDeps
	stateConflictScan
	stateFileConflicts
	stateDownloading
	stateInstalling
	stateRemoving
	stateHooks
	stateBootloader
)

// update is one progress emission decided by the tracker. An empty status
// is never produced here; periodic keep-alive emissions come from the
// runner's ticker instead.
type update struct {
	fraction float64
	status   string
}

// tracker is the heuristic state machine fed one output line at a time.
// It is owned by a single Run invocation and never reused.
type tracker struct {
	state    state
	progress float64

	// removal accounting, active when the caller announced how many
	// packages the transaction removes
	totalTargets int
	removed      int
}

func newTracker(totalTargets int) *tracker {
	return &tracker{state: stateIdle, totalTargets: totalTargets}
}

var (
	countedRe = regexp.MustCompile(`\((\d+)/(\d+)\)`)
	percentRe = regexp.MustCompile(`(\d+)%`)
)

// transition maps a set of trigger phrases (lowercase, with locale
// synonyms listed together) to a state change. Order is priority: the
// first matching transition wins, everything after it is not consulted.
type transition struct {
	match func(line string) bool
	apply func(t *tracker, line string) (update, bool)
}

func anyOf(phrases ...string) func(string) bool {
	return func(line string) bool {
		for _, p := range phrases {
			if strings.Contains(line, p) {
				return true
			}
		}
		return false
	}
}

func allOf(phrases ...string) func(string) bool {
	return func(line string) bool {
		for _, p := range phrases {
			if !strings.Contains(line, p) {
				return false
			}
		}
		return true
	}
}

// transitions is consulted for every line, case-insensitively. The
// Portuguese phrases are synonyms for the English ones: Manjaro systems
// routinely run pacman under a pt_BR locale and the output wording
// changes with it.
var transitions = []transition{
	{anyOf("downloading", "baixando", "download"), (*tracker).observeDownload},
	{anyOf("installing", "instalando", "installed", "instalado"), (*tracker).observeInstall},
	{anyOf("removing", "removendo"), (*tracker).observeRemove},
	{anyOf("generating grub configuration file", "gerando arquivo de configuração do grub"), (*tracker).observeBootloader},
	{anyOf("synchronizing package databases", "sincronizando bases de dados de pacotes"), (*tracker).observeSync},
	{anyOf("checking dependencies", "verificando dependências"), (*tracker).observeCheckDeps},
	{anyOf("looking for conflicting packages", "procurando por pacotes conflitantes"), (*tracker).observeConflictScan},
	{anyOf("checking for file conflicts", "verificando conflitos de arquivos"), (*tracker).observeFileConflicts},
	{anyOf("running post-transaction hooks", "executando hooks pós-transação"), (*tracker).observeHooks},
	{allOf("image", "found"), (*tracker).observeBootImages},
}

// observe classifies one raw output line. The returned update, when ok,
// must be emitted after the line itself has been forwarded. Unmatched
// lines change nothing.
func (t *tracker) observe(line string) (update, bool) {
	lower := strings.ToLower(line)
	for _, tr := range transitions {
		if tr.match(lower) {
			return tr.apply(t, lower)
		}
	}
	return update{}, false
}

func (t *tracker) observeDownload(line string) (update, bool) {
	t.state = stateDownloading

	// A "(current/total)" token positions us exactly within the
	// download band; a bare percentage is the fallback when pacman
	// prints per-file progress instead of transaction counts.
	if m := countedRe.FindStringSubmatch(line); m != nil {
		current, _ := strconv.Atoi(m[1])
		total, _ := strconv.Atoi(m[2])
		if total > 0 {
			t.progress = downloadBandStart + float64(current)/float64(total)*downloadBandWidth
			return update{
				fraction: t.progress,
				status:   fmt.Sprintf("Downloading packages (%d/%d)...", current, total),
			}, true
		}
	}
	if m := percentRe.FindStringSubmatch(line); m != nil {
		pct, _ := strconv.Atoi(m[1])
		t.progress = downloadBandStart + float64(pct)/100.0*downloadBandWidth
		return update{
			fraction: t.progress,
			status:   fmt.Sprintf("Downloading: %d%%", pct),
		}, true
	}
	return update{fraction: t.progress, status: "Downloading packages..."}, true
}

func (t *tracker) observeInstall(string) (update, bool) {
	if t.state != stateInstalling {
		t.state = stateInstalling
		t.progress = fracInstallStart
		return update{fraction: t.progress, status: "Installing packages..."}, true
	}
	// Damped step for every further installing/installed line. The curve
	// creeps toward 0.9 without reaching it; kept as-is because users
	// know this bar, warts and all.
	t.progress = minFloat(fracInstallStart+t.progress*0.1, fracInstallCap)
	return update{fraction: t.progress, status: "Installing..."}, true
}

func (t *tracker) observeRemove(string) (update, bool) {
	t.state = stateRemoving
	t.removed++
	if t.totalTargets > 0 {
		t.progress = removeBandStart + float64(t.removed)/float64(t.totalTargets)*removeBandWidth
		return update{
			fraction: t.progress,
			status:   fmt.Sprintf("Removing packages (%d/%d)...", t.removed, t.totalTargets),
		}, true
	}
	t.progress = 0.5
	return update{fraction: t.progress, status: "Removing packages..."}, true
}

func (t *tracker) observeBootloader(string) (update, bool) {
	t.state = stateBootloader
	t.progress = fracBootloader
	return update{fraction: t.progress, status: "Updating bootloader..."}, true
}

func (t *tracker) observeSync(string) (update, bool) {
	t.state = stateSyncing
	t.progress = fracSyncing
	return update{fraction: t.progress, status: "Synchronizing package databases..."}, true
}

func (t *tracker) observeCheckDeps(string) (update, bool) {
	t.state = stateCheckingDeps
	t.progress = fracCheckingDeps
	return update{fraction: t.progress, status: "Checking dependencies..."}, true
}

func (t *tracker) observeConflictScan(string) (update, bool) {
	t.state = stateConflictScan
	t.progress = fracConflictScan
	return update{fraction: t.progress, status: "Looking for conflicting packages..."}, true
}

func (t *tracker) observeFileConflicts(string) (update, bool) {
	t.state = stateFileConflicts
	t.progress = fracFileConflicts
	return update{fraction: t.progress, status: "Checking for file conflicts..."}, true
}

func (t *tracker) observeHooks(string) (update, bool) {
	t.state = stateHooks
	t.progress = fracHooks
	return update{fraction: t.progress, status: "Running post-transaction hooks..."}, true
}

func (t *tracker) observeBootImages(string) (update, bool) {
	// mkinitcpio/grub enumerate kernel images near the end of a removal.
	t.progress = fracBootImages
	return update{fraction: t.progress, status: "Updating bootloader information..."}, true
}

// fraction returns the current estimate, for keep-alive re-emissions.
func (t *tracker) fraction() float64 {
	return clamp(t.progress)
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
