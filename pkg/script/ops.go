package script

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pmkol/dlist/pkg/list"
)

type op struct {
	decode func(args map[string]any) (any, error)
	exec   func(r *Runner, args any) error
}

var ops = make(map[string]op)

// register adds an op whose args are decoded into an *A.
func register[A any](name string, exec func(r *Runner, a *A) error) {
	if _, dup := ops[name]; dup {
		panic(fmt.Sprintf("duplicated op %s", name))
	}
	ops[name] = op{
		decode: func(args map[string]any) (any, error) {
			a := new(A)
			if err := weakDecode(args, a); err != nil {
				return nil, fmt.Errorf("invalid args, %w", err)
			}
			return a, nil
		},
		exec: func(r *Runner, a any) error {
			return exec(r, a.(*A))
		},
	}
}

// Ops returns the names of all known ops.
func Ops() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	return names
}

type noArgs struct{}

type listArgs struct {
	List string `yaml:"list"`
}

type valuesArgs struct {
	List   string   `yaml:"list"`
	Values []string `yaml:"values"`
}

type popArgs struct {
	List string `yaml:"list"`
	N    int    `yaml:"n"` // default 1
}

type moveArgs struct {
	N int `yaml:"n"` // default 1
}

type valueArgs struct {
	Value string `yaml:"value"`
}

type insertArgs struct {
	Values []string `yaml:"values"`
}

type splitArgs struct {
	Into string `yaml:"into"`
}

type spliceArgs struct {
	From string `yaml:"from"`
}

type cloneArgs struct {
	List string `yaml:"list"`
	Into string `yaml:"into"`
}

type pairArgs struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

type assertArgs struct {
	Expr string `yaml:"expr"`
}

func init() {
	// list ops
	register("push_front", func(r *Runner, a *valuesArgs) error {
		l, err := r.listOrNew(a.List)
		if err != nil {
			return err
		}
		for _, v := range a.Values {
			l.PushFront(v)
		}
		return nil
	})
	register("push_back", func(r *Runner, a *valuesArgs) error {
		l, err := r.listOrNew(a.List)
		if err != nil {
			return err
		}
		l.Append(a.Values...)
		return nil
	})
	register("pop_front", func(r *Runner, a *popArgs) error {
		return r.pop("pop_front", a, (*list.List[string]).PopFront)
	})
	register("pop_back", func(r *Runner, a *popArgs) error {
		return r.pop("pop_back", a, (*list.List[string]).PopBack)
	})
	register("front", func(r *Runner, a *listArgs) error {
		return r.peek("front", a, r.front)
	})
	register("back", func(r *Runner, a *listArgs) error {
		return r.peek("back", a, r.back)
	})
	register("len", func(r *Runner, a *listArgs) error {
		l, err := r.list(a.List)
		if err != nil {
			return err
		}
		r.printf("len %s: %d", a.List, l.Len())
		return nil
	})
	register("clear", func(r *Runner, a *listArgs) error {
		l, err := r.list(a.List)
		if err != nil {
			return err
		}
		l.Clear()
		return nil
	})
	register("print", func(r *Runner, a *listArgs) error {
		l, err := r.list(a.List)
		if err != nil {
			return err
		}
		r.printf("%s: %v", a.List, r.slice(l))
		return nil
	})
	register("print_rev", func(r *Runner, a *listArgs) error {
		l, err := r.list(a.List)
		if err != nil {
			return err
		}
		vs := r.slice(l)
		slices.Reverse(vs)
		r.printf("%s (reversed): %v", a.List, vs)
		return nil
	})
	register("clone", func(r *Runner, a *cloneArgs) error {
		l, err := r.list(a.List)
		if err != nil {
			return err
		}
		if err := r.checkInto(a.Into); err != nil {
			return err
		}
		r.lists[a.Into] = l.Clone()
		return nil
	})
	register("equal", func(r *Runner, a *pairArgs) error {
		x, y, err := r.pair(a)
		if err != nil {
			return err
		}
		r.printf("equal %s %s: %t", a.A, a.B, list.Equal(x, y))
		return nil
	})
	register("compare", func(r *Runner, a *pairArgs) error {
		x, y, err := r.pair(a)
		if err != nil {
			return err
		}
		r.printf("compare %s %s: %d", a.A, a.B, list.Compare(x, y))
		return nil
	})
	register("assert", func(r *Runner, a *assertArgs) error {
		return r.assert(a.Expr)
	})

	// cursor ops
	register("cursor", func(r *Runner, a *listArgs) error {
		return r.openCursor(a.List)
	})
	register("close", func(r *Runner, _ *noArgs) error {
		r.closeCursor()
		return nil
	})
	register("move_next", func(r *Runner, a *moveArgs) error {
		return r.move(a, (*list.Cursor[string]).MoveNext)
	})
	register("move_prev", func(r *Runner, a *moveArgs) error {
		return r.move(a, (*list.Cursor[string]).MovePrev)
	})
	register("current", func(r *Runner, _ *noArgs) error {
		return r.peekCursor("current", (*list.Cursor[string]).Current)
	})
	register("peek_next", func(r *Runner, _ *noArgs) error {
		return r.peekCursor("peek_next", (*list.Cursor[string]).PeekNext)
	})
	register("peek_prev", func(r *Runner, _ *noArgs) error {
		return r.peekCursor("peek_prev", (*list.Cursor[string]).PeekPrev)
	})
	register("index", func(r *Runner, _ *noArgs) error {
		c, err := r.cur()
		if err != nil {
			return err
		}
		if i, ok := c.Index(); ok {
			r.printf("index: %d", i)
		} else {
			r.printf("index: <ghost>")
		}
		return nil
	})
	register("set", func(r *Runner, a *valueArgs) error {
		c, err := r.cur()
		if err != nil {
			return err
		}
		p := c.Current()
		if p == nil {
			return ErrGhost
		}
		*p = a.Value
		return nil
	})
	register("insert_before", func(r *Runner, a *insertArgs) error {
		c, err := r.cur()
		if err != nil {
			return err
		}
		c.SpliceBefore(list.From(a.Values...))
		return nil
	})
	register("insert_after", func(r *Runner, a *insertArgs) error {
		c, err := r.cur()
		if err != nil {
			return err
		}
		c.SpliceAfter(list.From(a.Values...))
		return nil
	})
	register("remove_current", func(r *Runner, _ *noArgs) error {
		c, err := r.cur()
		if err != nil {
			return err
		}
		if v, ok := c.RemoveCurrent(); ok {
			r.printf("removed: %s", v)
		} else {
			r.printf("removed: <ghost>")
		}
		return nil
	})
	register("split_before", func(r *Runner, a *splitArgs) error {
		return r.split(a, (*list.Cursor[string]).SplitBefore)
	})
	register("split_after", func(r *Runner, a *splitArgs) error {
		return r.split(a, (*list.Cursor[string]).SplitAfter)
	})
	register("splice_before", func(r *Runner, a *spliceArgs) error {
		return r.splice(a, (*list.Cursor[string]).SpliceBefore)
	})
	register("splice_after", func(r *Runner, a *spliceArgs) error {
		return r.splice(a, (*list.Cursor[string]).SpliceAfter)
	})
}

func (r *Runner) pop(name string, a *popArgs, pop func(*list.List[string]) (string, bool)) error {
	l, err := r.list(a.List)
	if err != nil {
		return err
	}
	n := a.N
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		v, ok := pop(l)
		if !ok {
			r.printf("%s %s: <empty>", name, a.List)
			return nil
		}
		r.printf("%s %s: %s", name, a.List, v)
	}
	return nil
}

func (r *Runner) peek(name string, a *listArgs, peek func(*list.List[string]) (string, bool)) error {
	l, err := r.list(a.List)
	if err != nil {
		return err
	}
	if v, ok := peek(l); ok {
		r.printf("%s %s: %s", name, a.List, v)
	} else {
		r.printf("%s %s: <empty>", name, a.List)
	}
	return nil
}

func (r *Runner) pair(a *pairArgs) (x, y *list.List[string], err error) {
	if x, err = r.list(a.A); err != nil {
		return nil, nil, err
	}
	if y, err = r.list(a.B); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func (r *Runner) move(a *moveArgs, move func(*list.Cursor[string])) error {
	c, err := r.cur()
	if err != nil {
		return err
	}
	n := a.N
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		move(c)
	}
	return nil
}

func (r *Runner) peekCursor(name string, peek func(*list.Cursor[string]) *string) error {
	c, err := r.cur()
	if err != nil {
		return err
	}
	if p := peek(c); p != nil {
		r.printf("%s: %s", name, *p)
	} else {
		r.printf("%s: <none>", name)
	}
	return nil
}

func (r *Runner) split(a *splitArgs, split func(*list.Cursor[string]) *list.List[string]) error {
	c, err := r.cur()
	if err != nil {
		return err
	}
	if err := r.checkInto(a.Into); err != nil {
		return err
	}
	r.lists[a.Into] = split(c)
	return nil
}

func (r *Runner) splice(a *spliceArgs, splice func(*list.Cursor[string], *list.List[string])) error {
	c, err := r.cur()
	if err != nil {
		return err
	}
	if a.From == r.cursorOn {
		return ErrSelfSplice
	}
	from, err := r.list(a.From)
	if err != nil {
		return err
	}
	splice(c, from)
	return nil
}

// checkInto validates the name of a list an op is about to create or
// replace.
func (r *Runner) checkInto(name string) error {
	if len(name) == 0 {
		return errors.New("missing target list name")
	}
	if r.cursor != nil && name == r.cursorOn {
		return fmt.Errorf("list %q is under the cursor", name)
	}
	return nil
}
