package mapping

// Properties is the property bag of the nodes and relationships.
type Properties map[string]interface{}

// Copy creates a shallow copy of the properties.
func (p Properties) Copy() Properties {
	if p == nil {
		return nil
	}
	cp := make(Properties, len(p))
	for k, v := range p {
		cp[k] = v
	}
	return cp
}
