package mmark

import "io"

// WalkResult is the result of a walk operation.
type WalkResult int

// WalkContinue indicates that the walk operation should continue.
const WalkContinue = 0

// WalkReplace indicates that the current element should be replaced with the
// elements returned by the function.
const WalkReplace = 1

// WalkSkip indicates that the current element should be skipped and
// no children should be processed.
const WalkSkip = 2

// WalkStop indicates that the walk operation should stop immediately.
const WalkStop = 3

// Filter applies the specified function 'fun' to each child element of the provided
// element 'elt'. The function 'fun' is not applied to 'elt' itself, even if 'elt's type
// matches the parameter type of 'fun'.
//
// The parameter type P should be the same as or implement the return type R. This
// relationship is not enforced by the type system. If this condition is not met,
// the filter operation will still execute, but the intended modifications may not be applied.
//
// The behavior of the filter depends on the WalkResult returned by 'fun':
//
//   - WalkStop: Terminates the traversal process immediately.
//   - WalkSkip: Skips processing of the current element.
//   - WalkReplace: Replaces the current element with the elements returned by 'fun'.
//   - WalkContinue: Continues without replacing the current element.
//
// To remove an element, 'fun' should return an empty slice of elements along with WalkReplace.
//
// The function returns an updated version of the 'elt' after applying the specified function 'fun'.
//
// Example:
//
//	doc = mmark.Filter(doc, func(str *mmark.Str) ([]mmark.Inline, mmark.WalkResult) {
//	    return []mmark.Inline{&mmark.Emph{
//	            Inlines: []mmark.Inline{&mmark.Str{Text: str.Text}},
//	        }}, mmark.WalkReplace
//	})
func Filter[P any, E Element, R Element](elt E, fun func(P) ([]R, WalkResult)) E {
	elt, _, _ = walkChildren(elt, fun)
	return elt
}

type queryResult struct{}

func (queryResult) element()              {}
func (queryResult) write(io.Writer) error { return nil }
func (queryResult) clone() Element        { return queryResult{} }

// Query applies the specified function 'fun' to each child element of the provided
// element 'elt'. The function 'fun' is not applied to 'elt' itself, regardless of whether
// 'elt's type matches the parameter type of 'fun'.
//
// This function is used for walking through the child elements of 'elt' and applying
// the function 'fun' to perform checks or actions, without altering the structure of 'elt'.
// It is particularly useful for operations like searching or validation where modification
// of the element is not required.
//
// The function 'fun' returns a WalkResult to control the traversal process:
//
//   - WalkStop: Terminates the traversal process immediately.
//   - WalkSkip: Skips processing of the current element.
//   - WalkContinue: Continues to the next element without any special action.
//
// Unlike Filter, Query does not modify the element 'elt' or its children. It strictly
// performs read-only operations as defined in 'fun'.
//
// Example:
//
//	var headings int
//	mmark.Query(doc, func(h *mmark.Heading) mmark.WalkResult {
//	    headings++
//	    return mmark.WalkSkip
//	})
//	fmt.Printf("doc has %d headings\n", headings)
func Query[P any, E Element](elt E, fun func(P) WalkResult) {
	walkChildren(elt, func(e P) ([]queryResult, WalkResult) {
		return nil, fun(e)
	})
}

// Walk support following filter input/output combinations (input columns, output rows):
//
//  |     R     | Inline | Block | []Inline | []Block | *E (E <: R) |
//  |-----------|--------|-------|----------|---------|-------------|
//  | []Inline  |   X    |       |    X     |         |      X      |
//  | []Block   |        |   X   |          |    X    |      X      |
//  | []*E      |        |       |          |         |      X      |
//
//
// So from the walk's point of view, following functions are possible
//
//    func (elt Inline) ([]Inline, WalkResult)
//    func (elt Block) ([]Block, WalkResult)
//
//    func (elt []Inline) ([]Inline, WalkResult)
//    func (elt []Block) ([]Block, WalkResult)
//
//    func (elt *E) ([]R, WalkResult) // *E <: R, R \in {Inline, Block}

func walkChildren[P any, E Element, R Element](e E, fun func(P) ([]R, WalkResult)) (E, bool, WalkResult) {
	switch e := any(e).(type) {
	case *Doc:
		blocks, updated, result := walkList(e.Blocks, fun)
		if updated {
			e = &Doc{File: e.File, Meta: e.Meta, Blocks: blocks}
		}
		return any(e).(E), updated, result
	// Inlines
	case *Emph:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Emph{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Strong:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Strong{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Strikeout:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Strikeout{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Superscript:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Superscript{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Subscript:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Subscript{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Link:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Link{Target: e.Target, Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Image:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Image{Target: e.Target, Inlines: lst}
		}
		return any(e).(E), updated, result

	// following have no children
	//
	case *Str:
	case *Code:
	case *LineBreak:

	// Blocks
	case *Para:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Para{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Heading:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Heading{Level: e.Level, Inlines: lst}
		}
		return any(e).(E), updated, result
	case *BulletList:
		items, updated, result := walkListOfLists(e.Items, fun)
		if updated {
			e = &BulletList{Items: items}
		}
		return any(e).(E), updated, result

	// following have no children
	case *CodeBlock:
	case *ThematicBreak:
	}
	return e, false, WalkContinue
}

func walkListOfLists[P any, S Element, R Element](source [][]S, fun func(P) ([]R, WalkResult)) ([][]S, bool, WalkResult) {
	var (
		newList []S
		result  WalkResult
		update  bool
		updated bool
	)
	for i := 0; i < len(source); {
		newList, update, result = walkList(source[i], fun)
		if update {
			if !updated {
				updated = true
				source = append([][]S(nil), source...)
			}
			if len(newList) == 0 {
				source = append(source[:i], source[i+1:]...)
			} else {
				source[i] = newList
				i++
			}
		} else {
			i++
		}
		if result == WalkStop {
			return source, updated, WalkStop
		}
	}
	return source, updated, WalkContinue
}

func walkList[P any, S Element, R Element](source []S, fun func(P) ([]R, WalkResult)) ([]S, bool, WalkResult) {
	var (
		replace                   []R
		result                    WalkResult
		updated                   = false
		update                    bool
		sameInOut, coercibleInOut bool
	)
	if _, ok := any(source).(P); ok { // special case, func handles lists and works down-top
		for i := range source {
			var item S
			item, update, result = walkChildren(source[i], fun)
			if update {
				if !updated {
					updated = true
					source = append([]S(nil), source...)
				}
				source[i] = item
			}
			if result == WalkStop {
				return source, updated, WalkStop
			}
		}
		list := any(source).(P)
		replace, result = fun(list)
		switch result {
		case WalkReplace:
			return any(replace).([]S), true, WalkContinue
		case WalkStop:
			return source, updated, WalkStop
		}
		return source, updated, WalkContinue
	}
	_, sameInOut = any(replace).([]S)
	if !sameInOut {
		var item R
		_, coercibleInOut = any(item).(S)
		if !coercibleInOut {
			_, coercibleInOut = any(replace).([]Element)
		}
	}
	for i := 0; i < len(source); {
		if v, ok := any(source[i]).(P); ok {
			replace, result = fun(v)
			switch result {
			case WalkStop:
				return source, updated, WalkStop
			case WalkSkip:
				i++
				continue
			case WalkReplace:
				if sameInOut || coercibleInOut {
					if !updated {
						updated = true
						source = append([]S(nil), source...)
					}
					if len(replace) == 0 {
						source = append(source[:i], source[i+1:]...)
						continue
					} else if len(replace) == 1 {
						source[i] = any(replace[0]).(S)
					} else if sameInOut {
						source = append(source[:i], append(any(replace).([]S), source[i+1:]...)...)
					} else {
						source = append(source[:i], append(make([]S, len(replace)), source[i+1:]...)...)
						for j := range replace {
							source[i+j] = any(replace[j]).(S)
						}
					}
					i += len(replace)
				} else {
					i++
				}
				continue
			case WalkContinue:
			}
		}
		var item S
		item, update, result = walkChildren(source[i], fun)
		if update {
			if !updated {
				updated = true
				source = append([]S(nil), source...)
			}
			source[i] = item
		}
		if result == WalkStop {
			return source, updated, WalkStop
		}
		i++
	}
	return source, updated, WalkContinue
}
