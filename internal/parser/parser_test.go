package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/speedkit/splitvault/internal/splits"
)

func parseDocument(t *testing.T, doc string) *splits.Run {
	t.Helper()
	run, err := Parse(strings.NewReader(doc), "test.lss")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return run
}

func TestParse_MinimalRoundTrip(t *testing.T) {
	run := parseDocument(t, `
		<Run version="1.7.0">
			<GameName>Portal</GameName>
			<CategoryName>Any%</CategoryName>
			<AttemptCount>3</AttemptCount>
			<Segments>
				<Segment>
					<Name>A</Name>
					<BestSegmentTime>
						<RealTime>00:00:10</RealTime>
					</BestSegmentTime>
				</Segment>
			</Segments>
		</Run>`)

	if run.GameName != "Portal" || run.CategoryName != "Any%" {
		t.Fatalf("unexpected identity: %q / %q", run.GameName, run.CategoryName)
	}
	if run.AttemptCount != 3 {
		t.Fatalf("unexpected attempt count: %d", run.AttemptCount)
	}
	if len(run.Segments) != 1 || run.Segments[0].Name != "A" {
		t.Fatalf("unexpected segments: %+v", run.Segments)
	}
	best := run.Segments[0].BestSegmentTime
	if best.RealTime == nil || best.RealTime.Duration() != 10*time.Second {
		t.Fatalf("unexpected best segment time: %+v", best)
	}
	if best.GameTime != nil {
		t.Fatalf("game time must be absent, got %v", best.GameTime)
	}
	if run.Path != "test.lss" {
		t.Fatalf("unexpected path: %q", run.Path)
	}
}

func TestParse_OffsetEncodings(t *testing.T) {
	run := parseDocument(t, `<Run version="1.6.0"><Offset>-12.5</Offset></Run>`)
	if run.Offset.Duration() != -12500*time.Millisecond {
		t.Fatalf("unexpected offset: %v", run.Offset.Duration())
	}

	run = parseDocument(t, `<Run version="1.6.0"><Offset>1.02:30:00</Offset></Run>`)
	if run.Offset.Duration() != 26*time.Hour+30*time.Minute {
		t.Fatalf("unexpected day-qualified offset: %v", run.Offset.Duration())
	}

	run = parseDocument(t, `<Run version="1.6.0"><Offset></Offset></Run>`)
	if !run.Offset.IsZero() {
		t.Fatalf("empty offset must default to zero, got %v", run.Offset.Duration())
	}
}

func TestParse_MissingVersionUsesLegacyGrammar(t *testing.T) {
	// No version attribute means 1.0.0.0: single-value time bodies, and the
	// personal best lives in PersonalBestSplitTime.
	run := parseDocument(t, `
		<Run>
			<Segments>
				<Segment>
					<Name>Old</Name>
					<PersonalBestSplitTime>55.5</PersonalBestSplitTime>
					<SplitTimes>
						<SplitTime name="Ignored">10</SplitTime>
					</SplitTimes>
					<BestSegmentTime>30</BestSegmentTime>
				</Segment>
			</Segments>
		</Run>`)

	seg := run.Segments[0]
	if seg.PersonalBestSplitTime.RealTime == nil || seg.PersonalBestSplitTime.RealTime.Duration() != 55500*time.Millisecond {
		t.Fatalf("unexpected personal best: %+v", seg.PersonalBestSplitTime)
	}
	if len(seg.Comparisons) != 0 {
		t.Fatalf("pre-1.3 documents must not populate comparisons: %+v", seg.Comparisons)
	}
	if len(run.CustomComparisons) != 0 {
		t.Fatalf("pre-1.3 documents must not register comparisons: %+v", run.CustomComparisons)
	}
	if seg.BestSegmentTime.RealTime == nil || seg.BestSegmentTime.RealTime.Duration() != 30*time.Second {
		t.Fatalf("unexpected best segment time: %+v", seg.BestSegmentTime)
	}
}

func TestParse_ModernDocumentSkipsPersonalBestSplitTime(t *testing.T) {
	run := parseDocument(t, `
		<Run version="1.6.0">
			<Segments>
				<Segment>
					<Name>New</Name>
					<PersonalBestSplitTime>55.5</PersonalBestSplitTime>
					<SplitTimes>
						<SplitTime name="Personal Best">
							<RealTime>00:01:00</RealTime>
						</SplitTime>
					</SplitTimes>
				</Segment>
			</Segments>
		</Run>`)

	seg := run.Segments[0]
	if seg.PersonalBestSplitTime.RealTime != nil {
		t.Fatalf("1.3+ documents must not populate the legacy field: %+v", seg.PersonalBestSplitTime)
	}
	cmp, ok := seg.Comparisons["Personal Best"]
	if !ok || cmp.RealTime == nil || cmp.RealTime.Duration() != time.Minute {
		t.Fatalf("unexpected comparison: %+v", seg.Comparisons)
	}
	if len(run.CustomComparisons) != 1 || run.CustomComparisons[0] != "Personal Best" {
		t.Fatalf("unexpected custom comparisons: %+v", run.CustomComparisons)
	}
}

func TestParse_CustomComparisonRegisteredOncePerRun(t *testing.T) {
	run := parseDocument(t, `
		<Run version="1.6.0">
			<Segments>
				<Segment>
					<Name>A</Name>
					<SplitTimes><SplitTime name="Gold"><RealTime>1</RealTime></SplitTime></SplitTimes>
				</Segment>
				<Segment>
					<Name>B</Name>
					<SplitTimes><SplitTime name="Gold"><RealTime>2</RealTime></SplitTime></SplitTimes>
				</Segment>
			</Segments>
		</Run>`)

	if len(run.CustomComparisons) != 1 {
		t.Fatalf("comparison name must register once: %+v", run.CustomComparisons)
	}
	for i, seg := range run.Segments {
		if _, ok := seg.Comparisons["Gold"]; !ok {
			t.Fatalf("segment %d is missing its comparison entry", i)
		}
	}
}

func TestParse_SegmentHistoryDuplicateIDKeepsLast(t *testing.T) {
	run := parseDocument(t, `
		<Run version="1.6.0">
			<Segments>
				<Segment>
					<Name>A</Name>
					<SegmentHistory>
						<Time id="7"><RealTime>10</RealTime></Time>
						<Time id="7"><RealTime>20</RealTime></Time>
					</SegmentHistory>
				</Segment>
			</Segments>
		</Run>`)

	hist := run.Segments[0].SegmentHistory
	if len(hist) != 1 {
		t.Fatalf("unexpected history size: %d", len(hist))
	}
	if got := hist[7]; got.RealTime == nil || got.RealTime.Duration() != 20*time.Second {
		t.Fatalf("duplicate id must keep the last value, got %+v", got)
	}
}

func TestParse_LegacySegmentHistoryBody(t *testing.T) {
	run := parseDocument(t, `
		<Run version="1.4.0">
			<Segments>
				<Segment>
					<Name>A</Name>
					<SegmentHistory>
						<Time id="-1">45.5</Time>
					</SegmentHistory>
				</Segment>
			</Segments>
		</Run>`)

	got := run.Segments[0].SegmentHistory[-1]
	if got.RealTime == nil || got.RealTime.Duration() != 45500*time.Millisecond {
		t.Fatalf("unexpected legacy history entry: %+v", got)
	}
	if got.GameTime != nil {
		t.Fatal("legacy body must only fill the real-time slot")
	}
}

func TestParse_RunHistoryShapes(t *testing.T) {
	// Shape B: below 1.4.1 the body is a single time span.
	run := parseDocument(t, `
		<Run version="1.2.0">
			<RunHistory>
				<Time id="1">90</Time>
			</RunHistory>
		</Run>`)
	if len(run.AttemptHistory) != 1 {
		t.Fatalf("unexpected attempt count: %d", len(run.AttemptHistory))
	}
	a := run.AttemptHistory[0]
	if a.Index != 1 || a.Time.RealTime == nil || a.Time.RealTime.Duration() != 90*time.Second {
		t.Fatalf("unexpected attempt: %+v", a)
	}
	if a.PauseTime != nil || a.Started != nil || a.Ended != nil {
		t.Fatalf("legacy shapes carry only a time: %+v", a)
	}

	// Shape A: 1.4.1 up to 1.5 uses the modern time body.
	run = parseDocument(t, `
		<Run version="1.4.2">
			<RunHistory>
				<Time id="2"><GameTime>01:00:00</GameTime></Time>
			</RunHistory>
		</Run>`)
	a = run.AttemptHistory[0]
	if a.Index != 2 || a.Time.GameTime == nil || a.Time.GameTime.Duration() != time.Hour {
		t.Fatalf("unexpected attempt: %+v", a)
	}
}

func TestParse_AttemptHistorySupersedesRunHistory(t *testing.T) {
	run := parseDocument(t, `
		<Run version="1.6.0">
			<RunHistory>
				<Time id="1"><RealTime>10</RealTime></Time>
			</RunHistory>
			<AttemptHistory>
				<Attempt id="5"><RealTime>20</RealTime></Attempt>
			</AttemptHistory>
		</Run>`)

	if len(run.AttemptHistory) != 1 {
		t.Fatalf("unexpected attempt count: %d", len(run.AttemptHistory))
	}
	if run.AttemptHistory[0].Index != 5 {
		t.Fatalf("attempts must come from AttemptHistory only: %+v", run.AttemptHistory[0])
	}
}

func TestParse_AttemptHistoryFullEntry(t *testing.T) {
	run := parseDocument(t, `
		<Run version="1.7.0">
			<AttemptHistory>
				<Attempt id="12" started="07/04/2019 15:30:00" isStartedSynced="True" ended="07/04/2019 16:45:30">
					<RealTime>01:15:30</RealTime>
					<GameTime>01:10:00</GameTime>
					<PauseTime>00:02:00</PauseTime>
				</Attempt>
			</AttemptHistory>
		</Run>`)

	a := run.AttemptHistory[0]
	if a.Index != 12 {
		t.Fatalf("unexpected index: %d", a.Index)
	}
	if a.Time.RealTime == nil || a.Time.RealTime.Duration() != time.Hour+15*time.Minute+30*time.Second {
		t.Fatalf("unexpected real time: %+v", a.Time)
	}
	if a.PauseTime == nil || a.PauseTime.Duration() != 2*time.Minute {
		t.Fatalf("unexpected pause time: %+v", a.PauseTime)
	}
	if a.Started == nil || !a.Started.Synced {
		t.Fatalf("unexpected start timestamp: %+v", a.Started)
	}
	wantStart := time.Date(2019, 7, 4, 15, 30, 0, 0, time.UTC)
	if !a.Started.Time.Equal(wantStart) {
		t.Fatalf("unexpected start time: %v", a.Started.Time)
	}
	if a.Ended == nil || a.Ended.Synced {
		t.Fatalf("end sync flag must default to false: %+v", a.Ended)
	}
}

func TestParse_AttemptHistoryEmptySpansAreAbsent(t *testing.T) {
	run := parseDocument(t, `
		<Run version="1.7.0">
			<AttemptHistory>
				<Attempt id="1">
					<RealTime></RealTime>
					<GameTime/>
				</Attempt>
			</AttemptHistory>
		</Run>`)

	a := run.AttemptHistory[0]
	if a.Time.RealTime != nil || a.Time.GameTime != nil {
		t.Fatalf("empty spans must be absent, not zero: %+v", a.Time)
	}
}

func TestParse_MetadataGatedByVersion(t *testing.T) {
	doc := `
		<Run version="%s">
			<Metadata>
				<Run id="abc123"/>
				<Platform usesEmulator="True">SNES</Platform>
				<Region>PAL</Region>
				<Variables>
					<Variable name="Difficulty">Hard</Variable>
					<Variable name="Glitch">Major</Variable>
				</Variables>
			</Metadata>
		</Run>`

	run := parseDocument(t, strings.Replace(doc, "%s", "1.6.0", 1))
	m := run.Metadata
	if m.RunID != "abc123" || m.PlatformName != "SNES" || !m.UsesEmulator || m.RegionName != "PAL" {
		t.Fatalf("unexpected metadata: %+v", m)
	}
	if len(m.Variables) != 2 || m.Variables[0].Name != "Difficulty" || m.Variables[1].Value != "Major" {
		t.Fatalf("variables must keep document order: %+v", m.Variables)
	}

	// Below 1.6 the whole subtree is dead data.
	run = parseDocument(t, strings.Replace(doc, "%s", "1.5.0", 1))
	if run.Metadata.RunID != "" || run.Metadata.PlatformName != "" {
		t.Fatalf("pre-1.6 documents must skip metadata: %+v", run.Metadata)
	}
}

func TestParse_IconDecoding(t *testing.T) {
	run := parseDocument(t, `
		<Run version="1.6.0">
			<GameIcon>tiny</GameIcon>
			<Segments>
				<Segment>
					<Name>A</Name>
					<Icon><![CDATA[`+legacyImageText([]byte{9, 9, 1, 2, 3, 9})+`]]></Icon>
				</Segment>
			</Segments>
		</Run>`)

	if len(run.GameIcon) != 0 {
		t.Fatalf("under-length icon text must decode to empty, got %v", run.GameIcon)
	}
	icon := run.Segments[0].Icon
	if len(icon) != 3 || icon[0] != 1 || icon[2] != 3 {
		t.Fatalf("unexpected segment icon: %v", icon)
	}
}

func TestParse_UnknownSubtreesAreSkipped(t *testing.T) {
	run := parseDocument(t, `
		<Run version="1.6.0">
			<AutoSplitterSettings><Custom><Deep>1</Deep></Custom></AutoSplitterSettings>
			<SomethingNew attr="x"><Nested><Deeper/></Nested></SomethingNew>
			<GameName>Still Parsed</GameName>
		</Run>`)
	if run.GameName != "Still Parsed" {
		t.Fatalf("unexpected game name: %q", run.GameName)
	}
}

func TestParse_InvalidBooleanFails(t *testing.T) {
	_, err := Parse(strings.NewReader(`
		<Run version="1.6.0">
			<Metadata>
				<Platform usesEmulator="Maybe">SNES</Platform>
			</Metadata>
		</Run>`), "")
	if !IsKind(err, KindInvalidBoolean) {
		t.Fatalf("expected invalid boolean error, got %v", err)
	}
}

func TestParse_MissingRequiredAttributeFails(t *testing.T) {
	_, err := Parse(strings.NewReader(`
		<Run version="1.6.0">
			<Segments>
				<Segment>
					<SegmentHistory><Time><RealTime>1</RealTime></Time></SegmentHistory>
				</Segment>
			</Segments>
		</Run>`), "")
	if !IsKind(err, KindAttributeNotFound) {
		t.Fatalf("expected attribute not found error, got %v", err)
	}

	_, err = Parse(strings.NewReader(`
		<Run version="1.6.0">
			<AttemptHistory><Attempt><RealTime>1</RealTime></Attempt></AttemptHistory>
		</Run>`), "")
	if !IsKind(err, KindAttributeNotFound) {
		t.Fatalf("expected attribute not found error, got %v", err)
	}

	_, err = Parse(strings.NewReader(`
		<Run version="1.6.0">
			<Segments>
				<Segment>
					<SplitTimes><SplitTime><RealTime>1</RealTime></SplitTime></SplitTimes>
				</Segment>
			</Segments>
		</Run>`), "")
	if !IsKind(err, KindAttributeNotFound) {
		t.Fatalf("expected attribute not found error, got %v", err)
	}
}

func TestParse_NestedElementWhereTextExpectedFails(t *testing.T) {
	_, err := Parse(strings.NewReader(`
		<Run version="1.6.0">
			<GameName><b>nope</b></GameName>
		</Run>`), "")
	if !IsKind(err, KindUnexpectedNestedElement) {
		t.Fatalf("expected unexpected nested element error, got %v", err)
	}
}

func TestParse_AttemptCountFormatFails(t *testing.T) {
	_, err := Parse(strings.NewReader(`<Run version="1.6.0"><AttemptCount>lots</AttemptCount></Run>`), "")
	if !IsKind(err, KindIntegerFormat) {
		t.Fatalf("expected integer format error, got %v", err)
	}
}

func TestParse_BadTimestampFails(t *testing.T) {
	_, err := Parse(strings.NewReader(`
		<Run version="1.7.0">
			<AttemptHistory>
				<Attempt id="1" started="2019-07-04T15:30:00Z"/>
			</AttemptHistory>
		</Run>`), "")
	if !IsKind(err, KindDateFormat) {
		t.Fatalf("expected date format error, got %v", err)
	}
}

func TestParse_MalformedMarkupFails(t *testing.T) {
	_, err := Parse(strings.NewReader(`<Run version="1.6.0"><GameName>a</Run>`), "")
	if !IsKind(err, KindXML) {
		t.Fatalf("expected xml error, got %v", err)
	}
}

func TestParse_EmptyInputFails(t *testing.T) {
	_, err := Parse(strings.NewReader(""), "")
	if !IsKind(err, KindUnexpectedEndOfInput) {
		t.Fatalf("expected unexpected end of input error, got %v", err)
	}
}

func TestParse_SegmentOrderPreserved(t *testing.T) {
	run := parseDocument(t, `
		<Run version="1.6.0">
			<Segments>
				<Segment><Name>one</Name></Segment>
				<Segment><Name>two</Name></Segment>
				<Segment><Name>three</Name></Segment>
			</Segments>
		</Run>`)
	want := []string{"one", "two", "three"}
	for i, name := range want {
		if run.Segments[i].Name != name {
			t.Fatalf("segment %d out of order: %q", i, run.Segments[i].Name)
		}
	}
}
