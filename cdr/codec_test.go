package cdr

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct {
	data string
	done bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.done {
		f.done = true
		return copy(p, f.data), nil
	}
	return 0, errors.New("disk went away")
}

func TestParseSingleLine(t *testing.T) {
	b := ParseText("A1,Bob,Alice,2024-01-02:09:30:00,120")
	require.Len(t, b.Records, 1)
	assert.Empty(t, b.Warnings)
	assert.Equal(t, Record{
		CallID:    "A1",
		Sender:    "Bob",
		Receiver:  "Alice",
		Timestamp: "2024-01-02 09:30:00",
		Duration:  120,
	}, b.Records[0])
}

func TestParseSkipsAndRecovers(t *testing.T) {
	in := strings.Join([]string{
		"",
		"  A1 , Bob , Alice , 2024-01-02 09:30:00 , 120 ",
		"   ",
		"short,line,only",
		"A2,Carol,Dan,2024-01-03T10:00:00,abc",
		"A3,Eve,Frank,sometime,-5",
		"A4,Gus,Hank,2024-01-04:11:00:00,7,extra,fields",
	}, "\n")

	b := ParseText(in)
	require.Len(t, b.Records, 4)

	assert.Equal(t, "A1", b.Records[0].CallID)
	assert.Equal(t, "Bob", b.Records[0].Sender)
	assert.Equal(t, int64(120), b.Records[0].Duration)

	assert.Equal(t, "2024-01-03 10:00:00", b.Records[1].Timestamp)
	assert.Zero(t, b.Records[1].Duration)

	assert.Equal(t, "sometime", b.Records[2].Timestamp)
	assert.Zero(t, b.Records[2].Duration)

	assert.Equal(t, int64(7), b.Records[3].Duration)

	require.Len(t, b.Warnings, 3)
	assert.Equal(t, Warning{Line: 4, Kind: MalformedRecord, Text: "short,line,only"}, b.Warnings[0])
	assert.Equal(t, Warning{Line: 5, Kind: NumericParseFailure, Text: "abc"}, b.Warnings[1])
	assert.Equal(t, NumericParseFailure, b.Warnings[2].Kind)
	assert.Equal(t, 6, b.Warnings[2].Line)
}

func TestParseNoQuotingSupport(t *testing.T) {
	b := ParseText(`"A,1",Bob,Alice,2024-01-02 09:30:00,5`)
	require.Len(t, b.Records, 1)
	assert.Equal(t, `"A`, b.Records[0].CallID)
	assert.Equal(t, `1"`, b.Records[0].Sender)
}

func TestParseSkipsLeadingHeaderOnly(t *testing.T) {
	in := "CallID,Sender,Receiver,Timestamp,Duration\nA1,Bob,Alice,2024-01-02 09:30:00,1\ncallid,sender,receiver,timestamp,duration\n"
	b := ParseText(in)
	require.Len(t, b.Records, 2)
	assert.Equal(t, "A1", b.Records[0].CallID)
	assert.Equal(t, "callid", b.Records[1].CallID)
}

func TestParseReadFault(t *testing.T) {
	b, err := Parse(&failingReader{data: "A1,Bob,Alice,2024-01-02 09:30:00,1\n"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
	assert.Empty(t, b.Records)
}

func TestSerialize(t *testing.T) {
	recs := []Record{
		{CallID: "A1", Sender: "Bob", Receiver: "Alice", Timestamp: "2024-01-02 09:30:00", Duration: 120},
		{CallID: "A,2", Sender: `Bo"b`, Receiver: "line\nbreak", Timestamp: "t", Duration: 0},
	}
	want := "CallID,Sender,Receiver,Timestamp,Duration\n" +
		"A1,Bob,Alice,2024-01-02 09:30:00,120\n" +
		"\"A,2\",\"Bo\"\"b\",\"line\nbreak\",t,0\n"
	assert.Equal(t, want, SerializeText(recs))
}

func TestSerializeEmpty(t *testing.T) {
	assert.Equal(t, Header()+"\n", SerializeText(nil))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "plain", quote("plain"))
	assert.Equal(t, " leading space", quote(" leading space"))
	assert.Equal(t, `"a,b"`, quote("a,b"))
	assert.Equal(t, `"say ""hi"""`, quote(`say "hi"`))
	assert.Equal(t, "\"a\nb\"", quote("a\nb"))
}

func TestRoundTrip(t *testing.T) {
	in := strings.Join([]string{
		"A1,Bob,Alice,2024-01-02:09:30:00,120",
		"b7,Carol,Dan,2024-02-03T04:05:06,0",
		"C3,Eve,Frank,not-a-date,x",
		"",
		"D4,Gus,Hank,2024-03-04 05:06:07,99",
	}, "\n")

	first := ParseText(in).Records
	second := ParseText(SerializeText(first)).Records
	assert.Equal(t, first, second)
}

func TestDetails(t *testing.T) {
	r := Record{CallID: "A1", Sender: "Bob", Receiver: "Alice", Timestamp: "2024-01-02 09:30:00", Duration: 120}
	assert.Equal(t, "Call ID: A1\nSender: Bob\nReceiver: Alice\nTimestamp: 2024-01-02 09:30:00\nDuration: 120 ms", r.Details())
}
