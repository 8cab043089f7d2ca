// Package mount binds a host container to a rendered vdom tree.
//
// A Mount keeps the previously rendered tree and patches every new tree
// against it, counting the host mutations each render applies. Renders are
// traced with OpenTelemetry and, when WithMetrics is given, recorded in
// Prometheus collectors.
//
//	m := mount.New(host.NewElement("body"), mount.WithLogger(logger))
//	res, err := m.Render(ctx, vdom.Fragment(vdom.NewText("Hello"), vdom.Div()))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(m.HTML(), res.Mutations.Inserts)
package mount
