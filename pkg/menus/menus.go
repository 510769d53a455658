// Package menus loads GtkBuilder-style menu definitions and turns them into
// Wails application menus.
package menus

import (
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/aperezdc/groover/pkg/actions"
)

// Kind identifies the type of a menu node.
type Kind int

const (
	KindItem Kind = iota
	KindSection
	KindSubmenu
)

// Node is an item, a section or a submenu. Sections and submenus have
// children; items have an action.
type Node struct {
	Kind     Kind
	Label    string
	Action   string
	Children []Node
}

// Menu is a top-level <menu> element.
type Menu struct {
	ID    string
	Nodes []Node
}

// Interface is a parsed definition file.
type Interface struct {
	menus map[string]*Menu
}

type xmlInterface struct {
	XMLName xml.Name  `xml:"interface"`
	Menus   []xmlNode `xml:"menu"`
}

type xmlAttribute struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlNode struct {
	XMLName    xml.Name
	ID         string         `xml:"id,attr"`
	Attributes []xmlAttribute `xml:"attribute"`
	Children   []xmlNode      `xml:",any"`
}

func (n xmlNode) attr(name string) string {
	for _, a := range n.Attributes {
		if a.Name == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// Parse reads a menu definition.
func Parse(r io.Reader) (*Interface, error) {
	var doc xmlInterface
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode menu definition: %w", err)
	}

	ifc := &Interface{menus: make(map[string]*Menu, len(doc.Menus))}
	for _, m := range doc.Menus {
		if m.ID == "" {
			return nil, fmt.Errorf("menu without id")
		}
		if _, dup := ifc.menus[m.ID]; dup {
			return nil, fmt.Errorf("menu %q defined twice", m.ID)
		}
		nodes, err := convert(m.Children)
		if err != nil {
			return nil, fmt.Errorf("menu %q: %w", m.ID, err)
		}
		ifc.menus[m.ID] = &Menu{ID: m.ID, Nodes: nodes}
	}
	return ifc, nil
}

// Load parses the definition stored at path in fsys.
func Load(fsys fs.FS, path string) (*Interface, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menu resource: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Menu returns the menu with the given id.
func (i *Interface) Menu(id string) (*Menu, error) {
	m, ok := i.menus[id]
	if !ok {
		return nil, fmt.Errorf("menu %q not defined", id)
	}
	return m, nil
}

func convert(children []xmlNode) ([]Node, error) {
	nodes := make([]Node, 0, len(children))
	for _, c := range children {
		switch c.XMLName.Local {
		case "item":
			action := c.attr("action")
			if action == "" {
				return nil, fmt.Errorf("item %q has no action", c.attr("label"))
			}
			nodes = append(nodes, Node{Kind: KindItem, Label: c.attr("label"), Action: action})
		case "section", "submenu":
			sub, err := convert(c.Children)
			if err != nil {
				return nil, err
			}
			kind := KindSection
			if c.XMLName.Local == "submenu" {
				kind = KindSubmenu
			}
			nodes = append(nodes, Node{Kind: kind, Label: c.attr("label"), Children: sub})
		default:
			return nil, fmt.Errorf("unexpected element <%s>", c.XMLName.Local)
		}
	}
	return nodes, nil
}

// StripMnemonic removes GTK mnemonic markers: "_Quit" becomes "Quit" and
// "__" becomes a literal underscore.
func StripMnemonic(label string) string {
	var sb strings.Builder
	for i := 0; i < len(label); i++ {
		if label[i] == '_' {
			if i+1 < len(label) && label[i+1] == '_' {
				sb.WriteByte('_')
				i++
			}
			continue
		}
		sb.WriteByte(label[i])
	}
	return sb.String()
}

// Build converts m into a Wails menu. Clicking an item calls dispatch with
// its application action name; accels is keyed by action name.
func Build(m *Menu, dispatch func(name string), accels map[string]*keys.Accelerator) (*menu.Menu, error) {
	out := menu.NewMenu()
	if err := appendNodes(out, m.Nodes, dispatch, accels); err != nil {
		return nil, fmt.Errorf("menu %q: %w", m.ID, err)
	}
	return out, nil
}

func appendNodes(out *menu.Menu, nodes []Node, dispatch func(string), accels map[string]*keys.Accelerator) error {
	for i, n := range nodes {
		switch n.Kind {
		case KindItem:
			name, err := actions.AppName(n.Action)
			if err != nil {
				return err
			}
			out.Append(menu.Text(StripMnemonic(n.Label), accels[name], func(*menu.CallbackData) {
				dispatch(name)
			}))
		case KindSection:
			if i > 0 && len(out.Items) > 0 {
				out.Append(menu.Separator())
			}
			if err := appendNodes(out, n.Children, dispatch, accels); err != nil {
				return err
			}
		case KindSubmenu:
			sub := menu.NewMenu()
			if err := appendNodes(sub, n.Children, dispatch, accels); err != nil {
				return err
			}
			out.Append(menu.SubMenu(StripMnemonic(n.Label), sub))
		}
	}
	return nil
}
