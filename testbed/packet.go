package testbed

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
)

// ToolkitName is written into serialized packets.
const ToolkitName = "XMP Testbed 1.0"

const (
	packetBegin   = `<?xpacket begin="` + "\uFEFF" + `" id="W5M0MpCehiHzreSzNTczkc9d"?>`
	packetEndW    = `<?xpacket end="w"?>`
	packetEndR    = `<?xpacket end="r"?>`
	defaultIndent = "   "
)

// packet is the serialized document. The body sits under "x:xmpmeta"
// unless the writer omitted that element.
type packet struct {
	Meta *body `json:"x:xmpmeta,omitempty"`
	RDF  *body `json:"rdf:RDF,omitempty"`
}

type body struct {
	About   string  `json:"about"`
	Toolkit string  `json:"xmptk,omitempty"`
	Props   []*node `json:"props"`
}

func (m *Meta) Serialize(flags engine.SerializeFlags, padding uint32, newline, indent string, baseIndent int32) (string, error) {
	if err := m.tk.trip("Serialize"); err != nil {
		return "", err
	}
	exact := flags&engine.SerializeExactPacketLength != 0
	wrapped := flags&engine.SerializeOmitPacketWrapper == 0
	if exact && !wrapped {
		engine.Raise(int32(errors.BadOptions), "Inconsistent options for exact size serialize")
	}

	b := &body{About: m.name, Props: make([]*node, 0, m.props.Len())}
	m.props.Scan(func(_ string, n *node) bool {
		b.Props = append(b.Props, n)
		return true
	})
	var p packet
	if flags&engine.SerializeOmitXMPMetaElement != 0 {
		p.RDF = b
	} else {
		b.Toolkit = ToolkitName
		p.Meta = b
	}

	if newline == "" {
		newline = "\n"
	}
	if indent == "" {
		indent = defaultIndent
	}

	var data []byte
	var err error
	if flags&(engine.SerializeUseCompactFormat|engine.SerializeOmitAllFormatting) != 0 {
		data, err = json.Marshal(&p)
	} else {
		lead := ""
		if baseIndent > 0 {
			lead = strings.Repeat(indent, int(baseIndent))
		}
		data, err = json.MarshalIndent(&p, lead, indent)
		if err == nil && newline != "\n" {
			data = bytes.ReplaceAll(data, []byte("\n"), []byte(newline))
		}
	}
	if err != nil {
		return "", engine.NewFault(int32(errors.BadSerialize), "%v", err)
	}
	if !wrapped {
		return string(data), nil
	}

	end := packetEndW
	if flags&engine.SerializeReadOnlyPacket != 0 {
		end = packetEndR
	}
	var out strings.Builder
	out.WriteString(packetBegin)
	out.WriteString(newline)
	out.Write(data)
	out.WriteString(newline)
	size := out.Len() + len(end)
	if exact {
		if size > int(padding) {
			engine.Raise(int32(errors.BadSerialize), "Can't fit into specified packet size")
		}
		out.WriteString(strings.Repeat(" ", int(padding)-size))
	} else if padding > 0 {
		out.WriteString(strings.Repeat(" ", int(padding)))
		out.WriteString(newline)
	}
	out.WriteString(end)
	return out.String(), nil
}

func unwrap(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if bytes.HasPrefix(b, []byte("<?xpacket begin")) {
		if i := bytes.Index(b, []byte("?>")); i >= 0 {
			b = b[i+2:]
		}
		if j := bytes.LastIndex(b, []byte("<?xpacket end")); j >= 0 {
			b = b[:j]
		}
	}
	return bytes.TrimSpace(b)
}

// parse decodes a packet. A buffer without an x:xmpmeta body yields an
// empty document when the caller requires that element; a bare rdf:RDF
// body is accepted otherwise.
func (t *Toolkit) parse(buffer []byte, flags engine.ParseFlags) (*Meta, error) {
	data := unwrap(buffer)
	m := t.newMeta()
	if len(data) == 0 {
		return m, nil
	}

	var p packet
	if err := json.Unmarshal(data, &p); err != nil {
		m.Release()
		engine.Raise(int32(errors.BadXml), "Invalid packet: %v", err)
	}

	b := p.Meta
	if b == nil && flags&engine.ParseRequireXMPMeta == 0 {
		b = p.RDF
	}
	if b == nil {
		return m, nil
	}

	m.name = b.About
	for _, n := range b.Props {
		if n == nil || n.NS == "" || n.Name == "" {
			continue
		}
		t.adopt(n)
		m.props.Set(propKey(n.NS, n.Name), n)
	}
	return m, nil
}

// adopt registers the namespaces a parsed node uses.
func (t *Toolkit) adopt(n *node) {
	if n.NS != "" {
		suggested := n.Prefix
		if suggested == "" {
			suggested = "ns"
		}
		n.Prefix, _ = t.RegisterNamespace(n.NS, suggested)
	}
	for _, list := range [][]*node{n.Items, n.Fields, n.Quals} {
		for _, c := range list {
			if c != nil {
				t.adopt(c)
			}
		}
	}
}
