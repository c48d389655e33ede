package accessibility

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// The identifiers are MD5 digests. The digest is used purely for identity
// within and across snapshots, so collision resistance in the cryptographic
// sense does not matter; changing the digest would change every identifier
// existing consumers hold.

func hashString(s string) string {
	if s == "" {
		return ""
	}
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// structuralHash identifies a node by its own position, size, enabled state
// and role, ignoring name, value and children. Two structurally identical
// elements therefore alias to the same identifier; that is intended. Nodes
// without geometry have no identifier.
func structuralHash(n *UINode) string {
	if n.Position == nil || n.Size == nil {
		return ""
	}
	position := fmt.Sprintf("%.0f;%.0f", n.Position.X, n.Position.Y)
	size := fmt.Sprintf("%.0f;%.0f", n.Size.Width, n.Size.Height)
	return hashString(position + size + strconv.FormatBool(n.Enabled) + n.Role)
}

// contentHash identifies a subtree by its children. It combines two passes:
// the children's content identifiers sorted lexically, so the hash is
// invariant to reorderings that preserve the multiset of subtree content,
// and the children's structural identifiers in original order, so "same
// children, different order" still produces a different hash. Leaves hash
// to the empty string.
func contentHash(children []*UINode) string {
	if len(children) == 0 {
		return ""
	}
	contentIDs := make([]string, 0, len(children))
	structIDs := make([]string, 0, len(children))
	for _, child := range children {
		contentIDs = append(contentIDs, child.ContentIdentifier)
		structIDs = append(structIDs, child.Identifier)
	}
	sort.Strings(contentIDs)

	content := hashString(strings.Join(contentIDs, ""))
	structure := hashString(strings.Join(structIDs, ""))
	return hashString(content + structure)
}
