package main

import (
	"io"
	url2 "net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_application_signupAndLogin(t *testing.T) {
	server := startTestServer(t, io.Discard, testLookupEnv)

	doc := server.Register(t, "onni", "hunter2hunter2")
	require.Equal(t, 1, doc.Find("button:contains('Log out')").Length())

	// Log out and back in with the same credentials.
	doc = server.SubmitForm(t, doc, "/logout", nil)
	require.Equal(t, 1, doc.Find("a:contains('Sign in')").Length())

	doc = server.Login(t, "onni", "hunter2hunter2")
	require.Equal(t, 1, doc.Find("button:contains('Log out')").Length())
}

func Test_application_signupValidation(t *testing.T) {
	server := startTestServer(t, io.Discard, testLookupEnv)

	// Too short a password is rejected.
	doc := server.GetDoc(t, "/signup")
	doc = server.SubmitForm(t, doc, "/signup", url2.Values{
		"username": {"liisa"},
		"password": {"short"},
	})
	require.Contains(t, doc.Find(".error").Text(), "at least 8 characters")

	// Duplicate usernames are rejected.
	server.Register(t, "liisa", "a valid password")
	doc = server.GetDoc(t, "/signup")
	doc = server.SubmitForm(t, doc, "/signup", url2.Values{
		"username": {"liisa"},
		"password": {"another password"},
	})
	require.Contains(t, doc.Find(".error").Text(), "already taken")
}

func Test_application_loginRejectsBadCredentials(t *testing.T) {
	server := startTestServer(t, io.Discard, testLookupEnv)
	server.Register(t, "aino", "a valid password")

	doc := server.GetDoc(t, "/login")
	doc = server.SubmitForm(t, doc, "/login", url2.Values{
		"username": {"aino"},
		"password": {"wrong password"},
	})
	require.Contains(t, doc.Find(".error").Text(), "Invalid username or password")
}
