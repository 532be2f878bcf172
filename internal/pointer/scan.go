package pointer

import "bytes"

// ScanReports is a bufio.SplitFunc that yields one pointer report per token.
// Bytes that do not start a report are skipped. A report cut short by EOF is
// returned as a short token so the decoder rejects it.
func ScanReports(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := bytes.IndexByte(data, reportPrefix[0])
	for start >= 0 {
		rest := data[start:]
		if len(rest) >= ReportLen {
			if bytes.HasPrefix(rest, reportPrefix[:]) {
				return start + ReportLen, rest[:ReportLen], nil
			}
		} else if bytes.HasPrefix(reportPrefix[:], rest[:min(len(rest), len(reportPrefix))]) {
			// possible partial report
			if atEOF {
				return len(data), rest, nil
			}
			return start, nil, nil
		}
		next := bytes.IndexByte(rest[1:], reportPrefix[0])
		if next < 0 {
			break
		}
		start += next + 1
	}
	return len(data), nil, nil
}
