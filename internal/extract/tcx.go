package extract

import (
	"bytes"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"activity-telemetry-lab/internal/domain"
	"activity-telemetry-lab/internal/normalization"
	"activity-telemetry-lab/internal/scalar"
)

// TCXNamespace is the TrainingCenterDatabase v2 schema URI. It is the
// fallback binding for the tcx prefix when a document declares no default
// namespace on its root, which some real-world exports get wrong.
const TCXNamespace = "http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"

// tcxQueries holds the compiled trackpoint queries for one document, bound
// to that document's effective namespace map.
type tcxQueries struct {
	trackpoints *xpath.Expr
	time        *xpath.Expr
	heartRate   *xpath.Expr
}

func compileTCXQueries(ns map[string]string) (*tcxQueries, error) {
	trackpoints, err := xpath.CompileWithNS("//tcx:Trackpoint", ns)
	if err != nil {
		return nil, err
	}
	timeExpr, err := xpath.CompileWithNS("./tcx:Time", ns)
	if err != nil {
		return nil, err
	}
	heartRate, err := xpath.CompileWithNS("./tcx:HeartRateBpm/tcx:Value", ns)
	if err != nil {
		return nil, err
	}
	return &tcxQueries{trackpoints: trackpoints, time: timeExpr, heartRate: heartRate}, nil
}

// FromTCX parses a TCX document and extracts one telemetry row per
// trackpoint. Power and speed are structurally absent in this format and
// always stay nil. A document the parser rejects yields no rows.
func FromTCX(data []byte) []domain.TelemetryRow {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	queries, err := compileTCXQueries(namespaceMap(doc))
	if err != nil {
		return nil
	}

	trackpoints := xmlquery.QuerySelectorAll(doc, queries.trackpoints)
	rows := make([]domain.TelemetryRow, 0, len(trackpoints))
	for _, tp := range trackpoints {
		ts, ok := ParseTimestamp(firstText(tp, queries.time))
		if !ok {
			continue
		}
		rows = append(rows, domain.TelemetryRow{
			Timestamp: ts,
			HRBpm:     scalar.ParseInt(firstText(tp, queries.heartRate)),
		})
	}
	normalization.SortRows(rows)
	return rows
}

// namespaceMap builds the effective namespace map from the document root.
// The root's unprefixed default namespace is registered under the tcx alias;
// prefixed declarations keep their prefix. When the root declares nothing
// the standard TCX v2 URI is bound so //tcx:Trackpoint still resolves for
// documents that only declare the namespace deeper in the tree.
func namespaceMap(doc *xmlquery.Node) map[string]string {
	ns := make(map[string]string)
	if root := rootElement(doc); root != nil {
		for _, attr := range root.Attr {
			switch {
			case attr.Name.Space == "" && attr.Name.Local == "xmlns" && attr.Value != "":
				ns["tcx"] = attr.Value
			case attr.Name.Space == "xmlns" && attr.Value != "":
				ns[attr.Name.Local] = attr.Value
			}
		}
	}
	if _, ok := ns["tcx"]; !ok {
		ns["tcx"] = TCXNamespace
	}
	return ns
}

func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

func firstText(node *xmlquery.Node, expr *xpath.Expr) string {
	if found := xmlquery.QuerySelector(node, expr); found != nil {
		return found.InnerText()
	}
	return ""
}
