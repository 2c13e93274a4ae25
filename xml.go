package yatranslate

import (
	"encoding/xml"
	"fmt"
)

// Node is a generic XML element as returned by the API in XML mode.
type Node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []Node     `xml:",any"`
}

// parseXML parses an XML document into its root Node.
func parseXML(data []byte) (*Node, error) {
	var root Node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &root, nil
}

// Find returns the first direct child with the given local name, or nil.
func (n *Node) Find(name string) *Node {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	for _, attr := range n.Attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// ChildTexts returns the text of every direct child, in document order.
func (n *Node) ChildTexts() []string {
	texts := make([]string, 0, len(n.Nodes))
	for _, child := range n.Nodes {
		texts = append(texts, child.Text)
	}
	return texts
}
