// Package ui is the terminal front-end for the student roster.
//
// The root AppModel hosts a single RosterView (Elm-style Init/Update/View).
// Mounting the view schedules exactly one roster fetch as a tea.Cmd; the
// completion arrives as a RosterLoadedMsg and is stored at most once. View
// renders a pure function of the stored state: disconnected (nothing stored,
// including while the fetch is pending or after it failed), empty, or the
// populated list. Quitting unmounts the view, cancelling the fetch and
// dropping any late completion.
package ui
