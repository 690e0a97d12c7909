// Package vanilla renders a form and its validation feedback as a plain HTML
// fragment. Templates are pongo2 files embedded in the binary; inputs get the
// input-error / input-success classes and invalid fields a
// "field-message error-message" element. Messages pass through bluemonday's
// strict policy so server supplied text cannot inject markup.
package vanilla
