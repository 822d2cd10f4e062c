package workflow

// CustomerOption is one entry of the customer select on the review form
type CustomerOption struct {
	Value      string
	Label      string
	AIDetected bool
}

// CustomerOptions lists the customers to choose from while reviewing. A customer
// name the AI extracted that matches no known customer is offered first, marked
// as AI detected.
func CustomerOptions(sess *Session) []CustomerOption {
	options := make([]CustomerOption, 0, len(sess.Customers)+1)

	if editable := sess.Editable(); editable != nil && editable.CustomerName != "" {
		name := editable.CustomerName
		known := false
		for _, c := range sess.Customers {
			if c.Name == name {
				known = true
				break
			}
		}
		if !known {
			options = append(options, CustomerOption{
				Value:      name,
				Label:      name + " (AI Detected)",
				AIDetected: true,
			})
		}
	}

	for _, c := range sess.Customers {
		options = append(options, CustomerOption{Value: c.Name, Label: c.Name})
	}
	return options
}
