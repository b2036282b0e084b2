package importer

import "strings"

// blockSeparator splits a bundle document into independent news blocks.
const blockSeparator = "=== NEWS START ==="

// splitBlocks divides decoded text into news blocks. A document without the
// separator is a single block (single-news archives predate the marker).
// Empty segments between separators are discarded.
func splitBlocks(content string) []string {
	if !strings.Contains(content, blockSeparator) {
		return []string{strings.TrimSpace(content)}
	}

	var blocks []string
	for _, part := range strings.Split(content, blockSeparator) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			blocks = append(blocks, trimmed)
		}
	}
	return blocks
}
