/*
Package query parses the selection language used to choose which parts
of a credential tree are disclosed.

A query is a brace-nested list of labels:

	{
	    personal {
	        name
	        surname
	    }
	    "home address"
	}

A label followed by "{" opens a scope for the labels nested in it; a
"}" closes the innermost scope. Every other label selects the path formed
by the labels of the enclosing scopes and its own, joined and terminated
by "/". The query above selects "personal/name/", "personal/surname/" and
"home address/". Labels containing whitespace or braces are written as
double-quoted Go strings. The outermost braces are optional.
*/
package query
