package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
)

type cellKind int

const (
	kindAmount cellKind = iota
	kindPercent
	kindScore
	kindFlag
)

// numbers formats ledger values for human-readable reports.
type numbers struct {
	p *message.Printer
}

func newNumbers(tag language.Tag) numbers {
	return numbers{p: message.NewPrinter(tag)}
}

func (n numbers) format(v ledger.Value, kind cellKind) string {
	if !v.Valid {
		return ledger.MissingCSV
	}
	switch kind {
	case kindPercent:
		return n.p.Sprintf("%.2f%%", v.Float*100)
	case kindScore:
		return n.p.Sprintf("%.3f", v.Float)
	case kindFlag:
		if v.Float != 0 {
			return "yes"
		}
		return "no"
	default:
		return n.p.Sprintf("%.2f", v.Float)
	}
}

var metricKinds = map[ledger.Metric]cellKind{
	ledger.MetricGDPGrowth:               kindPercent,
	ledger.MetricInflation:               kindPercent,
	ledger.MetricRevenueGDP:              kindPercent,
	ledger.MetricExpenditureGDP:          kindPercent,
	ledger.MetricOverallDeficitGDP:       kindPercent,
	ledger.MetricPrimaryDeficitGDP:       kindPercent,
	ledger.MetricDebtStockGDP:            kindPercent,
	ledger.MetricDSADebtGDP:              kindPercent,
	ledger.MetricDSAServiceRevenue:       kindPercent,
	ledger.MetricCABGDP:                  kindPercent,
	ledger.MetricNPLRatio:                kindPercent,
	ledger.MetricCARRatio:                kindPercent,
	ledger.MetricPolicyRate:              kindPercent,
	ledger.MetricSOEDebtGDP:              kindPercent,
	ledger.MetricDSABreach:               kindFlag,
	ledger.MetricGovernanceIndex:         kindScore,
	ledger.MetricPFMScore:                kindScore,
	ledger.MetricNBRScore:                kindScore,
	ledger.MetricACScore:                 kindScore,
	ledger.MetricAccountabilityScore:     kindScore,
	ledger.MetricFinancialStability:      kindScore,
	ledger.MetricSupervision:             kindScore,
	ledger.MetricSOEPerformance:          kindScore,
	ledger.MetricExpenditureEfficiency:   kindScore,
	ledger.MetricPolicyCoordinationScore: kindScore,
	ledger.MetricFXReservesMonths:        kindScore,
}

func kindOf(m ledger.Metric) cellKind {
	if k, ok := metricKinds[m]; ok {
		return k
	}
	return kindAmount
}
